package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
)

type tokenClaims struct {
	UserID   string `json:"userId"`
	RecordID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for identity that expires after the configured ttl.
func (s *TokenService) Issue(identity auth.Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		UserID:   identity.UserID,
		RecordID: identity.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify returns domain.ErrExpiredToken for expired tokens and
// domain.ErrInvalidToken for anything else that fails validation.
func (s *TokenService) Verify(tokenString string) (auth.Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Identity{}, domain.ErrExpiredToken
		}
		return auth.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return auth.Identity{}, domain.ErrInvalidToken
	}

	return auth.Identity{UserID: claims.UserID, ID: claims.RecordID}, nil
}
