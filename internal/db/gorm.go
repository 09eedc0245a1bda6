package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/config"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email     string     `gorm:"unique;not null"`
		Hash      string     `gorm:"not null"`
		FirstName *string
		LastName  *string
		Bookmarks []Bookmark `gorm:"constraint:OnDelete:CASCADE;"`
	}

	Bookmark struct {
		GormForkedModel
		Title       string `gorm:"not null"`
		Description *string
		Link        string `gorm:"not null"`
		UserID      uint64 `gorm:"not null;index"`
	}
)

// Models lists every table owned by this service, parents first.
func Models() []interface{} {
	return []interface{}{&User{}, &Bookmark{}}
}

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DSN()), l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}

	if cfg.DBAutoMigrate {
		if err := Migrate(context.Background(), sqlDB, l); err != nil {
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Info("Closing database connections.")
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects through the given dialector with the gorm logger routed into zap.
func Open(dialector gorm.Dialector, l *zap.SugaredLogger) (*gorm.DB, error) {
	gormLogger := logger.New(zap.NewStdLog(l.Desugar()), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	return db, nil
}
