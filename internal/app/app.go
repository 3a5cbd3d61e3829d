// Package app composes the expense tracker from its adapters and services.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-expense-tracker/internal/adapter/api/rest"
	"go-expense-tracker/internal/config"
	"go-expense-tracker/internal/core/ports"
	"go-expense-tracker/internal/core/service"
	"go-expense-tracker/internal/observability"
)

const shutdownTimeout = 5 * time.Second

// Deps are the outbound adapters the application runs against.
// Cache is optional.
type Deps struct {
	Users    ports.UserRepository
	Expenses ports.ExpenseRepository
	Cache    ports.Cache
}

type App struct {
	cfg     config.Config
	logger  *slog.Logger
	handler http.Handler
}

// New wires services, handlers and the router. It performs no I/O.
func New(cfg config.Config, deps Deps, logger *slog.Logger) *App {
	var cache ports.Cache
	if deps.Cache != nil {
		cache = observability.NewInstrumentedCache(deps.Cache)
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	authSvc := service.NewAuthService(deps.Users, hasher, tokens, logger)
	expenseSvc := service.NewExpenseService(deps.Expenses, cache, logger)

	router := rest.NewRouter(
		rest.NewHandler(expenseSvc, logger),
		rest.NewAuthHandler(authSvc, logger),
		tokens,
		logger,
		rest.RequestID,
		rest.Logger(logger),
		rest.Recoverer(logger),
		rest.CORS(cfg.CORSOrigins),
		observability.TracingMiddleware,
		observability.Middleware,
	)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", router)

	return &App{cfg: cfg, logger: logger, handler: mux}
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves on the configured port until ctx is cancelled, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", "addr", ln.Addr().String(), "env", a.cfg.AppEnv)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.logger.Info("Server exited")
	return nil
}
