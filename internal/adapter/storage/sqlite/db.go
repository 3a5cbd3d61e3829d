// Package sqlite stores users and expenses in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"go-expense-tracker/internal/core/domain"
)

// Open opens the database at path and runs migrations. A path of
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps an in-memory database shared and serialises writers.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	if err := migrate(ctx, conn, logger); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// PathFromURL strips the sqlite:// or file: prefix from a DATABASE_URL.
func PathFromURL(url string) string {
	if p, ok := strings.CutPrefix(url, "sqlite://"); ok {
		return p
	}
	return strings.TrimPrefix(url, "file:")
}

func migrate(ctx context.Context, conn *sql.DB, logger *slog.Logger) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE CHECK (user_id <> ''),
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount REAL NOT NULL CHECK (amount >= 0),
			description TEXT NOT NULL CHECK (description <> ''),
			category TEXT NOT NULL CHECK (category <> ''),
			date_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, date_ms DESC)`,
	}

	for _, m := range migrations {
		if _, err := conn.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	logger.Info("sqlite migrations completed", "count", len(migrations))
	return nil
}

// violation maps constraint failures onto domain errors and returns nil
// for anything else.
func violation(err error, onUnique error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return onUnique
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return fmt.Errorf("%w: check constraint failed", domain.ErrValidation)
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: required column missing", domain.ErrValidation)
	}
	return nil
}
