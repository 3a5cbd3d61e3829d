package auth

import (
	"fmt"
	"strings"

	"go-expense-tracker/internal/core/domain"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	PasswordHash string `json:"-"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if u.UserID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}

// NormalizeUserID trims surrounding whitespace so lookups and inserts agree.
func NormalizeUserID(userID string) string {
	return strings.TrimSpace(userID)
}

// Identity is the authenticated caller, as proven by a verified token.
type Identity struct {
	UserID string
	ID     string
}
