package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/expense"
	"go-expense-tracker/internal/core/ports"
)

// ExpenseRepository implements ports.ExpenseRepository using PostgreSQL.
type ExpenseRepository struct {
	db *pgxpool.Pool
}

var _ ports.ExpenseRepository = (*ExpenseRepository)(nil)

// NewExpenseRepository creates a new postgres expense repository.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id::text, user_id, amount, description, category, date`

// Create persists a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, e expense.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, description, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, e.ID, e.UserID, e.Amount, e.Description, e.Category, e.Date)
	if err != nil {
		if v := violation(err, domain.ErrConflict); v != nil {
			return v
		}
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListByOwner returns an iterator over the owner's expenses, newest date first.
func (r *ExpenseRepository) ListByOwner(ctx context.Context, owner string) (iter.Seq2[expense.Expense, error], error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}

	return func(yield func(expense.Expense, error) bool) {
		defer rows.Close()
		for rows.Next() {
			e, err := scanExpense(rows)
			if err != nil {
				yield(expense.Expense{}, fmt.Errorf("scan error: %w", err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(expense.Expense{}, fmt.Errorf("rows iteration error: %w", err))
		}
	}, nil
}

// Update overwrites only the fields present in patch. NULL parameters keep
// the stored value.
func (r *ExpenseRepository) Update(ctx context.Context, id, owner string, patch expense.Patch) (expense.Expense, error) {
	query := `
		UPDATE expenses
		SET amount      = COALESCE($3::double precision, amount),
		    description = COALESCE($4::text, description),
		    category    = COALESCE($5::text, category),
		    date        = COALESCE($6::timestamptz, date),
		    updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + expenseColumns

	row := r.db.QueryRow(ctx, query, id, owner, patch.Amount, patch.Description, patch.Category, patch.Date)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, domain.ErrExpenseNotFound
		}
		if v := violation(err, domain.ErrConflict); v != nil {
			return expense.Expense{}, v
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	return e, nil
}

// Delete removes the owner's expense by ID.
func (r *ExpenseRepository) Delete(ctx context.Context, id, owner string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date); err != nil {
		return expense.Expense{}, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}
