package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/ports"
	"go-expense-tracker/internal/observability"
)

type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger *slog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (s *AuthService) Register(ctx context.Context, userID, password string) (user auth.User, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer span.End()
	defer func() { observability.RecordAuthAttempt("register", authOutcome(err)) }()

	userID = auth.NormalizeUserID(userID)
	if userID == "" || password == "" {
		return auth.User{}, domain.ErrMissingFields
	}
	span.SetAttributes(attribute.String("user.id", userID))

	// Pre-check gives a clean error in the common case; the unique index
	// still catches concurrent registrations.
	_, err = s.repo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return auth.User{}, domain.ErrDuplicateUser
	case !errors.Is(err, domain.ErrUserNotFound):
		span.RecordError(err)
		return auth.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		span.RecordError(err)
		return auth.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user = auth.User{
		ID:           uuid.NewString(),
		UserID:       userID,
		PasswordHash: hashed,
	}
	if err = user.Validate(); err != nil {
		return auth.User{}, err
	}

	if err = s.repo.Create(ctx, user); err != nil {
		span.RecordError(err)
		return auth.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.UserID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, userID, password string) (user auth.User, token string, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()
	defer func() { observability.RecordAuthAttempt("login", authOutcome(err)) }()

	userID = auth.NormalizeUserID(userID)
	if userID == "" || password == "" {
		return auth.User{}, "", domain.ErrMissingFields
	}
	span.SetAttributes(attribute.String("user.id", userID))

	user, err = s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return auth.User{}, "", err
		}
		span.RecordError(err)
		return auth.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return auth.User{}, "", domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{UserID: user.UserID, ID: user.ID})
	if err != nil {
		span.RecordError(err)
		return auth.User{}, "", err
	}

	span.AddEvent("token issued", trace.WithAttributes(attribute.String("expires_at", expiresAt.String())))
	return user, token, nil
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "invalid_credentials"
	default:
		return "error"
	}
}
