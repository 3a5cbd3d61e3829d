package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-expense-tracker/internal/adapter/storage/mongodb"
	"go-expense-tracker/internal/adapter/storage/postgres"
	"go-expense-tracker/internal/adapter/storage/sqlite"
	"go-expense-tracker/internal/config"
	"go-expense-tracker/internal/observability"
)

// Storage is an opened backend. Close releases its connections.
type Storage struct {
	Deps
	Driver string
	Close  func(context.Context) error
}

// OpenStorage connects to the backend named by cfg.DatabaseURL and brings
// its schema up to date.
func OpenStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Storage, error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}

func openPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Storage, error) {
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, dbPool, logger); err != nil {
		dbPool.Close()
		return nil, err
	}

	statsCtx, stopStats := context.WithCancel(context.WithoutCancel(ctx))
	observability.StartDBStatsCollector(statsCtx, dbPool)

	return &Storage{
		Deps: Deps{
			Users:    postgres.NewUserRepository(dbPool),
			Expenses: postgres.NewExpenseRepository(dbPool),
		},
		Driver: config.DriverPostgres,
		Close: func(context.Context) error {
			stopStats()
			dbPool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Storage, error) {
	client, err := mongodb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureSchema(ctx, db, logger); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Storage{
		Deps: Deps{
			Users:    mongodb.NewUserRepository(db),
			Expenses: mongodb.NewExpenseRepository(db),
		},
		Driver: config.DriverMongo,
		Close:  client.Disconnect,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Storage, error) {
	db, err := sqlite.Open(ctx, sqlite.PathFromURL(cfg.DatabaseURL), logger)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}

	return &Storage{
		Deps: Deps{
			Users:    sqlite.NewUserRepository(db),
			Expenses: sqlite.NewExpenseRepository(db),
		},
		Driver: config.DriverSQLite,
		Close:  func(context.Context) error { return db.Close() },
	}, nil
}
