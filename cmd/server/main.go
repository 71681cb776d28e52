package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kazandelikates/catalog/internal/config"
	"github.com/kazandelikates/catalog/internal/core"
	_ "github.com/kazandelikates/catalog/internal/core/layouts" // Register sheet layouts
	"github.com/kazandelikates/catalog/internal/logging"
	"github.com/kazandelikates/catalog/internal/source"
	"github.com/kazandelikates/catalog/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); errors.Is(err, os.ErrNotExist) {
		slog.Info("no .env file found, using environment variables")
	} else if err != nil {
		slog.Warn("failed to load .env file", "error", err)
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"sheets", len(core.DefaultSheets),
		"max_concurrent_builds", cfg.Catalog.MaxConcurrentBuilds,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"cache_enabled", cfg.Cache.RedisURL != "",
	)
	slog.Info("layouts registered", "count", core.LayoutCount())
	slog.Debug("effective configuration", "config", cfg.String())

	limiter := core.NewBuildLimiter(cfg.Catalog.MaxConcurrentBuilds, cfg.Catalog.BuildWait)
	service := core.NewService(source.NewHTTPFetcher(cfg.Source), core.WithBuildLimiter(limiter))

	var opts []web.Option
	if cfg.Cache.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			slog.Error("failed to parse redis URL", "error", err)
			os.Exit(1)
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()

		// The cache is optional: an unreachable Redis only costs a warning.
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unreachable, serving without response cache", "error", err)
		} else {
			opts = append(opts, web.WithCache(web.NewRedisCache(client)))
			slog.Info("response cache enabled", "ttl", cfg.Cache.TTL)
		}
	}

	server := web.NewServer(service, cfg, opts...)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Let in-flight catalog builds finish before exiting
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for catalog builds to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("catalog builds did not complete in time", "error", err)
			}
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
