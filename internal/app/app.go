package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/database"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/modules/content"
	"github.com/inkwell-app/inkwell/internal/modules/inference"
	"github.com/inkwell-app/inkwell/internal/pkg/archive"
	"github.com/inkwell-app/inkwell/internal/pkg/permit"
	pkgredis "github.com/inkwell-app/inkwell/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	permits *permit.Pool
	content *content.Service
	logger  *zap.Logger
}

// Option customizes how New builds the application.
type Option func(*options)

type options struct {
	inference []inference.Option
}

// WithInferenceOptions passes options through to the inference client.
func WithInferenceOptions(opts ...inference.Option) Option {
	return func(o *options) {
		o.inference = append(o.inference, opts...)
	}
}

// New initializes the application: DB → Redis → inference → routes.
func New(logger *zap.Logger, cfg *config.AppConfig, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.Inference.APIKey == "" {
		logger.Warn("inference api key is empty, requests will be sent unauthenticated")
	}
	client := inference.NewClient(cfg.Inference, append([]inference.Option{inference.WithLogger(logger)}, o.inference...)...)
	permits := permit.New(cfg.Inference.MaxConcurrency)
	svc := content.NewService(content.NewRepository(db), client, permits, logger)

	if cfg.Archive.Enable {
		store, err := archive.New(cfg.Archive)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("archive: %w", err)
		}
		svc.WithArchiver(store)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	a := &App{
		cfg:     cfg,
		router:  router,
		db:      db,
		redis:   rc,
		permits: permits,
		content: svc,
		logger:  logger,
	}
	if err := a.registerRoutes(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, database.Close(a.db))
	return errors.Join(errs...)
}

func (a *App) redisCheck() func(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Ping
}
