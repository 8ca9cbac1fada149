// Package app provides the application lifecycle management for the random
// article service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/wikiroam/randomarticle/internal/api"
	"github.com/wikiroam/randomarticle/internal/cache"
	"github.com/wikiroam/randomarticle/internal/config"
	"github.com/wikiroam/randomarticle/internal/database"
	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/metrics"
	"github.com/wikiroam/randomarticle/internal/provider"
	"github.com/wikiroam/randomarticle/internal/resolver"
)

// DefaultShutdownTimeout is the default timeout for graceful shutdown
const DefaultShutdownTimeout = 30 * time.Second

// App represents the service with all its dependencies
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sqlx.DB
	redisClient *redis.Client
	httpServer  *http.Server
	version     string
}

// Options contains configuration for creating a new App
type Options struct {
	ConfigPath string
	Version    string
}

// New creates a new App instance with all dependencies initialized
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	appLogger = appLogger.With(
		logger.String("service", "randomarticle"),
		logger.String("version", opts.Version),
	)

	db, err := database.NewPostgresConnection(cfg.Postgres)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = database.Close(db)
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	repo := database.NewArticleRepository(db)
	previews := cache.NewPreviewCache(redisClient, cfg.Cache.PreviewTTL, appLogger)
	providerClient := provider.NewClient(&cfg.Provider, appLogger)

	registry := prometheus.NewRegistry()
	tracker := metrics.NewTracker(registry)

	res, err := resolver.NewResolver(resolver.Deps{
		Titles:   providerClient,
		Fetcher:  providerClient,
		Store:    repo,
		Previews: previews,
		Metrics:  tracker,
		Logger:   appLogger,
	})
	if err != nil {
		_ = redisClient.Close()
		_ = database.Close(db)
		_ = appLogger.Sync()
		return nil, fmt.Errorf("create resolver: %w", err)
	}

	handlers := api.NewHandlers(
		res,
		previews,
		repo.Ping,
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		appLogger,
		opts.Version,
	)
	router := api.NewRouter(handlers, registry, cfg, appLogger)

	return &App{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		redisClient: redisClient,
		httpServer:  router.NewServer(),
		version:     opts.Version,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server",
			logger.String("address", a.config.Server.Address),
			logger.Bool("debug", a.config.Debug),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	return a.waitForShutdown(ctx, serverErr)
}

// waitForShutdown handles graceful shutdown
func (a *App) waitForShutdown(ctx context.Context, serverErr chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.logger.Info("Shutting down gracefully",
			logger.String("signal", sig.String()),
		)
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully",
			logger.String("reason", "context cancelled"),
		)
	case err := <-serverErr:
		if err != nil {
			a.logger.Error("Server error", logger.Error(err))
			return err
		}
		return nil
	}

	a.shutdownHTTPServer()
	a.logger.Info("Service stopped")
	return nil
}

// shutdownHTTPServer gracefully shuts down the HTTP server
func (a *App) shutdownHTTPServer() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown error", logger.Error(err))
	} else {
		a.logger.Info("HTTP server stopped")
	}
}

// Close cleans up resources
func (a *App) Close() error {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("Failed to close Redis client", logger.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("Failed to close database", logger.Error(err))
		}
	}
	return a.logger.Sync()
}

// Logger returns the application logger
func (a *App) Logger() logger.Logger {
	return a.logger
}
