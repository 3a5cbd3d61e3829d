package expense

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-expense-tracker/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

func TestExpense_Validate(t *testing.T) {
	valid := Expense{ID: "1", UserID: "alice", Amount: 12.5, Description: "Lunch", Category: "food"}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr string
	}{
		{name: "valid", mutate: func(e *Expense) {}},
		{name: "zero amount is allowed", mutate: func(e *Expense) { e.Amount = 0 }},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = -5 }, wantErr: "validation failed: amount cannot be negative"},
		{name: "missing id", mutate: func(e *Expense) { e.ID = "" }, wantErr: "validation failed: id is required"},
		{name: "missing owner", mutate: func(e *Expense) { e.UserID = "" }, wantErr: "validation failed: userId is required"},
		{name: "blank description", mutate: func(e *Expense) { e.Description = "  " }, wantErr: "validation failed: description is required"},
		{name: "missing category", mutate: func(e *Expense) { e.Category = "" }, wantErr: "validation failed: category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestDraft_Build(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)

	t.Run("defaults date to now", func(t *testing.T) {
		e, err := Draft{Amount: ptr(3.0), Description: "Coffee", Category: "food"}.Build("id-1", "alice", now)
		require.NoError(t, err)
		assert.Equal(t, NormalizeDate(now), e.Date)
		assert.Equal(t, "alice", e.UserID)
		assert.Equal(t, "id-1", e.ID)
	})

	t.Run("keeps supplied date", func(t *testing.T) {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		e, err := Draft{Amount: ptr(3.0), Description: "Coffee", Category: "food", Date: &date}.Build("id-1", "alice", now)
		require.NoError(t, err)
		assert.Equal(t, date, e.Date)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, err := Draft{Description: "Coffee", Category: "food"}.Build("id-1", "alice", now)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := Draft{Amount: ptr(-5.0), Description: "Coffee", Category: "food"}.Build("id-1", "alice", now)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestPatch(t *testing.T) {
	original := Expense{
		ID:          "1",
		UserID:      "alice",
		Amount:      20,
		Description: "Groceries",
		Category:    "home",
		Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("empty patch is rejected", func(t *testing.T) {
		assert.True(t, Patch{}.IsEmpty())
		assert.True(t, errors.Is(Patch{}.Validate(), domain.ErrValidation))
	})

	t.Run("category only", func(t *testing.T) {
		p := Patch{Category: ptr("food")}
		require.NoError(t, p.Validate())

		updated := p.Apply(original)
		assert.Equal(t, "food", updated.Category)
		assert.Equal(t, original.Amount, updated.Amount)
		assert.Equal(t, original.Description, updated.Description)
		assert.Equal(t, original.Date, updated.Date)
		assert.Equal(t, original.UserID, updated.UserID)
	})

	t.Run("invalid fields", func(t *testing.T) {
		assert.Error(t, Patch{Amount: ptr(-1.0)}.Validate())
		assert.Error(t, Patch{Description: ptr("")}.Validate())
		assert.Error(t, Patch{Category: ptr(" ")}.Validate())
		assert.NoError(t, Patch{Amount: ptr(0.0)}.Validate())
	})
}
