package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/ports"
)

type UserRepository struct {
	db *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	query := `INSERT INTO users (id, user_id, password_hash) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, user.ID, user.UserID, user.PasswordHash)
	if err != nil {
		if v := violation(err, domain.ErrDuplicateUser); v != nil {
			return v
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (auth.User, error) {
	query := `SELECT id::text, user_id, password_hash FROM users WHERE user_id = $1`
	row := r.db.QueryRow(ctx, query, userID)

	var user auth.User
	err := row.Scan(&user.ID, &user.UserID, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, domain.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
