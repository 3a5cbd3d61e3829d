package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations executes the embedded SQL migration files in name order.
// Every script is idempotent (IF NOT EXISTS), so this is safe on each startup.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) error {
	logger.Info("running database migrations")

	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
		logger.Debug("applied migration", "file", name)
	}

	logger.Info("migrations completed successfully", "count", len(files))
	return nil
}
