package ports

import (
	"context"
	"errors"
	"time"

	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/domain/expense"
)

// AuthService registers and authenticates users.
type AuthService interface {
	Register(ctx context.Context, userID, password string) (auth.User, error)
	Login(ctx context.Context, userID, password string) (user auth.User, token string, err error)
}

// ExpenseService manages expenses on behalf of an authenticated owner.
type ExpenseService interface {
	Create(ctx context.Context, owner string, draft expense.Draft) (expense.Expense, error)
	List(ctx context.Context, owner string) ([]expense.Expense, error)
	Update(ctx context.Context, owner, id string, patch expense.Patch) (expense.Expense, error)
	Delete(ctx context.Context, owner, id string) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(identity auth.Identity) (token string, expiresAt time.Time, err error)
	Verify(token string) (auth.Identity, error)
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized read models. Entries are keyed by a per-owner
// generation counter so a write can retire every entry read before it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error

	// Generation returns the counter stored at key, or zero when it is unset.
	Generation(ctx context.Context, key string) (int64, error)

	// Incr atomically increments the counter at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}
