package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/domain/expense"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbPool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := RunMigrations(ctx, dbPool, logger); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		dbPool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	}

	return dbPool, cleanup
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbPool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	users := NewUserRepository(dbPool)
	expenses := NewExpenseRepository(dbPool)

	t.Run("migrations are idempotent", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		assert.NoError(t, RunMigrations(ctx, dbPool, logger))
	})

	t.Run("users", func(t *testing.T) {
		u := auth.User{ID: uuid.NewString(), UserID: "alice", PasswordHash: "hash"}
		require.NoError(t, users.Create(ctx, u))

		err := users.Create(ctx, auth.User{ID: uuid.NewString(), UserID: "alice", PasswordHash: "hash2"})
		assert.True(t, errors.Is(err, domain.ErrDuplicateUser))

		found, err := users.FindByUserID(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u, found)

		_, err = users.FindByUserID(ctx, "ghost")
		assert.True(t, errors.Is(err, domain.ErrUserNotFound))
	})

	t.Run("expense lifecycle", func(t *testing.T) {
		owner := "owner-" + uuid.NewString()
		for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
			e := expense.Expense{
				ID: uuid.NewString(), UserID: owner, Amount: 10, Description: d, Category: "misc", Date: day(d),
			}
			require.NoError(t, expenses.Create(ctx, e))
		}

		seq, err := expenses.ListByOwner(ctx, owner)
		require.NoError(t, err)
		var got []string
		var ids []string
		for e, err := range seq {
			require.NoError(t, err)
			got = append(got, e.Description)
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"2024-03-01", "2024-02-01", "2024-01-01"}, got)

		category := "food"
		updated, err := expenses.Update(ctx, ids[0], owner, expense.Patch{Category: &category})
		require.NoError(t, err)
		assert.Equal(t, "food", updated.Category)
		assert.Equal(t, "2024-03-01", updated.Description)
		assert.Equal(t, 10.0, updated.Amount)
		assert.True(t, day("2024-03-01").Equal(updated.Date))

		_, err = expenses.Update(ctx, ids[0], "mallory", expense.Patch{Category: &category})
		assert.True(t, errors.Is(err, domain.ErrExpenseNotFound))

		assert.True(t, errors.Is(expenses.Delete(ctx, ids[0], "mallory"), domain.ErrExpenseNotFound))
		require.NoError(t, expenses.Delete(ctx, ids[0], owner))
		assert.True(t, errors.Is(expenses.Delete(ctx, ids[0], owner), domain.ErrExpenseNotFound))
	})

	t.Run("check constraint rejects negative amount", func(t *testing.T) {
		err := expenses.Create(ctx, expense.Expense{
			ID: uuid.NewString(), UserID: "alice", Amount: -5, Description: "x", Category: "y", Date: time.Now(),
		})
		assert.True(t, errors.Is(err, domain.ErrValidation))

		err = expenses.Create(ctx, expense.Expense{
			ID: uuid.NewString(), UserID: "alice", Amount: 0, Description: "x", Category: "y", Date: time.Now(),
		})
		assert.NoError(t, err)
	})

	t.Run("concurrent saves", func(t *testing.T) {
		const numGoroutines = 50
		owner := "concurrent-" + uuid.NewString()
		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := 0; i < numGoroutines; i++ {
			go func(idx int) {
				defer wg.Done()
				e := expense.Expense{
					ID:          uuid.NewString(),
					UserID:      owner,
					Amount:      float64(idx),
					Description: fmt.Sprintf("Expense %d", idx),
					Category:    "test",
					Date:        time.Now(),
				}
				if err := expenses.Create(ctx, e); err != nil {
					t.Errorf("failed to save expense %d: %v", idx, err)
				}
			}(i)
		}
		wg.Wait()

		var count int
		err := dbPool.QueryRow(ctx, "SELECT count(*) FROM expenses WHERE user_id = $1", owner).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, numGoroutines, count)
	})
}
