package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker/internal/service"
)

const healthTimeout = 2 * time.Second

var (
	Module = fx.Provide(
		NewHTTPServer,
	)
)

type (
	// Pinger reports whether the backing database is reachable.
	Pinger interface {
		PingContext(ctx context.Context) error
	}

	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		e         *echo.Echo
		auth      *service.Auth
		users     *service.Users
		bookmarks *service.Bookmarks
		pinger    Pinger
		logger    *zap.SugaredLogger
	}
)

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	gormDB *gorm.DB,
	auth *service.Auth,
	users *service.Users,
	bookmarks *service.Bookmarks,
	logger *zap.SugaredLogger,
) (*HTTPServer, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}

	instance := New(auth, users, bookmarks, sqlDB, logger)
	e := instance.e

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.HTTPListen()
				logger.Infow("Starting HTTP server.", "listen", listen)
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return instance, nil
}

// New builds the router without binding a listener.
func New(auth *service.Auth, users *service.Users, bookmarks *service.Bookmarks, pinger Pinger, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		e:         e,
		auth:      auth,
		users:     users,
		bookmarks: bookmarks,
		pinger:    pinger,
		logger:    logger,
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(instance.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(echo.Context) bool {
			return !logger.Desugar().Core().Enabled(zapcore.DebugLevel)
		},
		Handler: instance.dumpBody,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.errorHandler

	authG := e.Group("/auth")
	authG.POST("/signup", instance.Signup)
	authG.POST("/signin", instance.Signin)

	userG := e.Group("/users", instance.AuthMiddleware)
	userG.GET("/me", instance.UserMe)
	userG.PATCH("", instance.UserUpdate)

	bookmarkG := e.Group("/bookmarks", instance.AuthMiddleware)
	bookmarkG.GET("", instance.BookmarkList)
	bookmarkG.POST("", instance.BookmarkCreate)
	bookmarkG.GET("/:id", instance.BookmarkGet)
	bookmarkG.PATCH("/:id", instance.BookmarkUpdate)
	bookmarkG.DELETE("/:id", instance.BookmarkDelete)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/healthz", instance.Health)

	return &instance
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *HTTPServer) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		s.logger.Warnw("database ping failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return errors.Wrap(service.ErrValidation, err.Error())
	}
	return nil
}
