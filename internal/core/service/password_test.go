package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, h.Compare(hash, "s3cret"))
	assert.False(t, h.Compare(hash, "wrong"))
	assert.False(t, h.Compare("not-a-hash", "s3cret"))

	again, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "each hash must carry a fresh salt")
}

func TestNewBcryptHasher_DefaultsOutOfRangeCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 10, NewBcryptHasher(10).cost)
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Compare(hash, long))

	// Differs only after byte 72, which plain bcrypt would ignore.
	assert.False(t, h.Compare(hash, strings.Repeat("a", 79)+"b"))
	assert.False(t, h.Compare(hash, strings.Repeat("a", 72)))
}
