package service

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects inputs longer than this many bytes.
const maxBcryptInput = 72

// BcryptHasher hashes passwords with a per-hash random salt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash. bcrypt compares in constant time.
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

// bcryptInput digests passwords past bcrypt's limit so every byte counts.
func bcryptInput(password string) []byte {
	if len(password) <= maxBcryptInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
