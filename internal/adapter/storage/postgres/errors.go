package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"go-expense-tracker/internal/core/domain"
)

const (
	uniqueViolation  = "23505"
	checkViolation   = "23514"
	notNullViolation = "23502"
)

// violation maps integrity constraint failures onto domain errors and
// returns nil for anything else.
func violation(err error, onUnique error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case uniqueViolation:
		return onUnique
	case checkViolation, notNullViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
	}
	return nil
}
