package ports

import (
	"context"
	"iter"

	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/domain/expense"
)

// UserRepository defines storage for users.
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrDuplicateUser when
	// the userId is already taken.
	Create(ctx context.Context, user auth.User) error

	// FindByUserID returns domain.ErrUserNotFound when no user matches.
	FindByUserID(ctx context.Context, userID string) (auth.User, error)
}

// ExpenseRepository defines storage for expenses. Every lookup is scoped by
// both the record id and the owner.
type ExpenseRepository interface {
	Create(ctx context.Context, e expense.Expense) error

	// ListByOwner streams the owner's expenses, most recent date first.
	ListByOwner(ctx context.Context, owner string) (iter.Seq2[expense.Expense, error], error)

	// Update applies the patch and returns the stored result, or
	// domain.ErrExpenseNotFound when no owned record matched.
	Update(ctx context.Context, id, owner string, patch expense.Patch) (expense.Expense, error)

	// Delete returns domain.ErrExpenseNotFound when nothing was removed.
	Delete(ctx context.Context, id, owner string) error
}
