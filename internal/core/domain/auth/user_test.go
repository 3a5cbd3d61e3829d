package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-expense-tracker/internal/core/domain"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{ID: "123", UserID: "alice", PasswordHash: "$2a$10$hash"},
			wantErr: false,
		},
		{
			name:    "missing id",
			user:    User{UserID: "alice", PasswordHash: "$2a$10$hash"},
			wantErr: true,
			errMsg:  "validation failed: id is required",
		},
		{
			name:    "missing userId",
			user:    User{ID: "123", PasswordHash: "$2a$10$hash"},
			wantErr: true,
			errMsg:  "validation failed: userId is required",
		},
		{
			name:    "missing password hash",
			user:    User{ID: "123", UserID: "alice"},
			wantErr: true,
			errMsg:  "validation failed: password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeUserID(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUserID("  alice\t"))
	assert.Equal(t, "", NormalizeUserID("   "))
}
