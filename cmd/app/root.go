package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/logger"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/proto"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/transport"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bookmarker",
		Short:        "Multi-user bookmark backend",
		Long:         "bookmarker serves per-user bookmarks over HTTP and gRPC. Configuration comes from BOOKMARKER_* environment variables or a .env file.",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP and gRPC servers",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
	)

	return root
}

func appOptions() fx.Option {
	return fx.Options(
		config.Module,
		logger.Module,
		db.Module,
		auth.Module,
		service.Module,
		transport.Module,
		proto.Module,
		fx.Invoke(func(*transport.HTTPServer, *proto.BookmarkerServerImpl) {}),
	)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app := fx.New(appOptions())
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	gdb, err := db.Open(postgres.Open(cfg.DSN()), l)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(cmd.Context(), sqlDB, l); err != nil {
		return err
	}
	l.Info("Migrations applied.")
	return nil
}
