// Package domain holds the error taxonomy shared by the core and its adapters.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Adapters translate these into transport status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Specific errors, each wrapping exactly one kind.
var (
	ErrMissingFields      = fmt.Errorf("%w: missing fields", ErrValidation)
	ErrDuplicateUser      = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user does not exist", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrForbidden)
	ErrMissingToken       = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrExpiredToken       = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrExpenseNotFound    = fmt.Errorf("%w: expense not found", ErrNotFound)
)
