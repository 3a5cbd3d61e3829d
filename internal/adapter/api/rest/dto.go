package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/expense"
)

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type createExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        *string  `json:"date"`
}

func (req createExpenseRequest) toDraft() (expense.Draft, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return expense.Draft{}, err
	}
	return expense.Draft{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
	}, nil
}

// updateExpenseRequest has no userId field; ownership comes from the token.
type updateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

func (req updateExpenseRequest) toPatch() (expense.Patch, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return expense.Patch{}, err
	}
	return expense.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
	}, nil
}

type expenseResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

func toExpenseResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
	}
}

type expenseListResponse struct {
	Count    int               `json:"count"`
	Expenses []expenseResponse `json:"expenses"`
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Absent or empty input yields nil.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: date must be RFC 3339 or YYYY-MM-DD", domain.ErrValidation)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}
