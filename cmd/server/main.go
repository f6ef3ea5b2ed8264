// Package main implements the entry point for the pagegen server,
// which turns AI provider completions into persisted, sanitized posts
// and exposes the pipeline over HTTP.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/pagegen/internal/api"
	"github.com/phrazzld/pagegen/internal/cache"
	"github.com/phrazzld/pagegen/internal/config"
	"github.com/phrazzld/pagegen/internal/platform/logger"
	"github.com/phrazzld/pagegen/internal/platform/postgres"
	"github.com/phrazzld/pagegen/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application together, and serves
// HTTP until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("cache_enabled", cfg.Cache.Enabled),
		slog.String("cache_backend", cfg.Cache.Backend))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	if err := postgres.MigrateUp(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	respCache, err := buildCache(cfg.Cache, appLogger)
	if err != nil {
		return fmt.Errorf("building cache: %w", err)
	}

	postStore := postgres.NewPostgresPostStore(db, appLogger)
	statsStore := postgres.NewPostgresStatsStore(db, appLogger)

	factory := service.NewGeneratorFactory(appLogger)

	genSvc, err := service.NewGenerationService(
		cfg.Providers, factory, postStore, respCache, cfg.Cache.TTL(), appLogger)
	if err != nil {
		return fmt.Errorf("building generation service: %w", err)
	}

	statsSvc, err := service.NewStatsService(statsStore, appLogger)
	if err != nil {
		return fmt.Errorf("building stats service: %w", err)
	}

	defaults := api.GenerationDefaults{
		Provider:    cfg.Generation.Provider,
		WordCount:   cfg.Generation.WordCount,
		ContentType: cfg.Generation.ContentType,
		PostStatus:  cfg.Generation.PostStatus,
	}

	router := api.NewRouter(genSvc, statsSvc, defaults, appLogger)

	return serveHTTP(cfg.Server.Port, router, appLogger)
}

// buildCache constructs the configured cache backend, or returns nil
// when caching is disabled.
func buildCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, error) {
	if !cfg.Enabled {
		logger.Info("response cache disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		return cache.NewRedis(redis.NewClient(opts), logger), nil

	case "memory":
		return cache.NewMemory(cfg.Capacity)

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// serveHTTP starts the HTTP server and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
func serveHTTP(port int, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server shutdown completed")
	return nil
}
