package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"go-expense-tracker/internal/adapter/cache/redis"
	"go-expense-tracker/internal/app"
	"go-expense-tracker/internal/config"
	"go-expense-tracker/internal/observability"
)

// -- MAIN --

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// Init Tracing
	tpShutdown, err := observability.InitTracerProvider(ctx, "expense-tracker", cfg.OtelExporterEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := tpShutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Init Storage (runs migrations for the selected backend)
	store, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()
	logger.Info("storage ready", "driver", store.Driver)

	// Init Cache
	deps := store.Deps
	if cfg.RedisAddr != "" {
		cache := redis.NewAdapter(cfg.RedisAddr, cfg.CacheTTL)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, expense list cache will miss until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		deps.Cache = cache
	}

	return app.New(cfg, deps, logger).Run(ctx)
}
