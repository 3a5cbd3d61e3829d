package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/expense"
	"go-expense-tracker/internal/core/ports"
)

type ExpenseRepository struct {
	db *sql.DB
}

var _ ports.ExpenseRepository = (*ExpenseRepository)(nil)

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, user_id, amount, description, category, date_ms`

func (r *ExpenseRepository) Create(ctx context.Context, e expense.Expense) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.Amount, e.Description, e.Category, e.Date.UnixMilli(),
	)
	if err != nil {
		if v := violation(err, domain.ErrConflict); v != nil {
			return v
		}
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListByOwner yields the owner's expenses newest date first. Equal dates
// come back most recently inserted first.
func (r *ExpenseRepository) ListByOwner(ctx context.Context, owner string) (iter.Seq2[expense.Expense, error], error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? ORDER BY date_ms DESC, rowid DESC",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}

	return func(yield func(expense.Expense, error) bool) {
		defer rows.Close()
		for rows.Next() {
			e, err := scanExpense(rows)
			if err != nil {
				yield(expense.Expense{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(expense.Expense{}, fmt.Errorf("rows error: %w", err))
		}
	}, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id, owner string, patch expense.Patch) (expense.Expense, error) {
	var dateMs any
	if patch.Date != nil {
		dateMs = patch.Date.UnixMilli()
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE expenses SET
			amount = COALESCE(?, amount),
			description = COALESCE(?, description),
			category = COALESCE(?, category),
			date_ms = COALESCE(?, date_ms)
		WHERE id = ? AND user_id = ?
		RETURNING `+expenseColumns,
		nullable(patch.Amount), nullable(patch.Description), nullable(patch.Category), dateMs, id, owner,
	)

	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.Expense{}, domain.ErrExpenseNotFound
		}
		if v := violation(err, domain.ErrConflict); v != nil {
			return expense.Expense{}, v
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, owner string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// nullable turns an absent patch field into SQL NULL so COALESCE keeps
// the stored value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (expense.Expense, error) {
	var e expense.Expense
	var dateMs int64
	if err := s.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &dateMs); err != nil {
		return expense.Expense{}, err
	}
	e.Date = time.UnixMilli(dateMs).UTC()
	return e, nil
}
