package expense

import (
	"fmt"
	"strings"
	"time"

	"go-expense-tracker/internal/core/domain"
)

// Expense is a single spending record owned by one user.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// Validate enforces the invariants every stored expense must satisfy.
func (e Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if e.UserID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if e.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	return nil
}

// NormalizeDate puts t into the precision every backend can round-trip.
func NormalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Draft is the caller-supplied input for a new expense.
type Draft struct {
	Amount      *float64
	Description string
	Category    string
	Date        *time.Time
}

// Build turns the draft into a valid Expense. A missing date defaults to now.
func (d Draft) Build(id, owner string, now time.Time) (Expense, error) {
	if d.Amount == nil {
		return Expense{}, fmt.Errorf("%w: amount is required", domain.ErrValidation)
	}

	date := now
	if d.Date != nil && !d.Date.IsZero() {
		date = *d.Date
	}

	e := Expense{
		ID:          id,
		UserID:      owner,
		Amount:      *d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        NormalizeDate(date),
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Amount      *float64
	Description *string
	Category    *string
	Date        *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Category == nil && p.Date == nil
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: no updatable fields provided", domain.ErrValidation)
	}
	if p.Amount != nil && *p.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", domain.ErrValidation)
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", domain.ErrValidation)
	}
	return nil
}

// Apply returns e with the patched fields overwritten.
func (p Patch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = NormalizeDate(*p.Date)
	}
	return e
}
