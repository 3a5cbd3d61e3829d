package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, user_id, password_hash) VALUES (?, ?, ?)",
		user.ID, user.UserID, user.PasswordHash,
	)
	if err != nil {
		if v := violation(err, domain.ErrDuplicateUser); v != nil {
			return v
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (auth.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, password_hash FROM users WHERE user_id = ?",
		userID,
	)

	var u auth.User
	if err := row.Scan(&u.ID, &u.UserID, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, domain.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
