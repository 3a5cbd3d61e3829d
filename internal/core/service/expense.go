package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/expense"
	"go-expense-tracker/internal/core/ports"
)

var tracer = otel.Tracer("internal/core/service")

type ExpenseService struct {
	repo   ports.ExpenseRepository
	cache  ports.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewExpenseService builds the service. cache may be nil, in which case
// listing always reads from the repository.
func NewExpenseService(repo ports.ExpenseRepository, cache ports.Cache, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

func generationKey(owner string) string {
	return "expenses:user:" + owner + ":gen"
}

func listCacheKey(owner string, gen int64) string {
	return fmt.Sprintf("expenses:user:%s:v%d", owner, gen)
}

func (s *ExpenseService) Create(ctx context.Context, owner string, draft expense.Draft) (expense.Expense, error) {
	ctx, span := tracer.Start(ctx, "ExpenseService.Create", trace.WithAttributes(
		attribute.String("user.id", owner),
	))
	defer span.End()

	e, err := draft.Build(uuid.NewString(), owner, s.now())
	if err != nil {
		return expense.Expense{}, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		span.RecordError(err)
		return expense.Expense{}, fmt.Errorf("failed to save expense: %w", err)
	}

	s.invalidate(ctx, owner)
	s.logger.InfoContext(ctx, "expense created", "id", e.ID, "user_id", owner)
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context, owner string) ([]expense.Expense, error) {
	ctx, span := tracer.Start(ctx, "ExpenseService.List", trace.WithAttributes(
		attribute.String("user.id", owner),
	))
	defer span.End()

	// The generation is read before the repository so a write that lands
	// mid-listing moves readers to a key this snapshot never fills.
	gen, cacheable := s.generation(ctx, owner)
	if cacheable {
		if cached, ok := s.fromCache(ctx, owner, gen); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	seq, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]expense.Expense, 0)
	for e, err := range seq {
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to list expenses: %w", err)
		}
		expenses = append(expenses, e)
	}

	if cacheable {
		s.toCache(ctx, owner, gen, expenses)
	}
	return expenses, nil
}

func (s *ExpenseService) Update(ctx context.Context, owner, id string, patch expense.Patch) (expense.Expense, error) {
	ctx, span := tracer.Start(ctx, "ExpenseService.Update", trace.WithAttributes(
		attribute.String("user.id", owner),
		attribute.String("expense.id", id),
	))
	defer span.End()

	if err := patch.Validate(); err != nil {
		return expense.Expense{}, err
	}
	if patch.Date != nil {
		d := expense.NormalizeDate(*patch.Date)
		patch.Date = &d
	}
	if !validID(id) {
		return expense.Expense{}, domain.ErrExpenseNotFound
	}

	updated, err := s.repo.Update(ctx, id, owner, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return expense.Expense{}, err
		}
		span.RecordError(err)
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidate(ctx, owner)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, owner, id string) error {
	ctx, span := tracer.Start(ctx, "ExpenseService.Delete", trace.WithAttributes(
		attribute.String("user.id", owner),
		attribute.String("expense.id", id),
	))
	defer span.End()

	if !validID(id) {
		return domain.ErrExpenseNotFound
	}

	if err := s.repo.Delete(ctx, id, owner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		span.RecordError(err)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.invalidate(ctx, owner)
	s.logger.InfoContext(ctx, "expense deleted", "id", id, "user_id", owner)
	return nil
}

// validID reports whether id could name a stored record.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *ExpenseService) generation(ctx context.Context, owner string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, generationKey(owner))
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read expense cache generation", "user_id", owner, "error", err)
		return 0, false
	}
	return gen, true
}

func (s *ExpenseService) fromCache(ctx context.Context, owner string, gen int64) ([]expense.Expense, bool) {
	data, err := s.cache.Get(ctx, listCacheKey(owner, gen))
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "failed to read expense cache", "user_id", owner, "error", err)
		}
		return nil, false
	}

	var expenses []expense.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt expense cache entry", "user_id", owner, "error", err)
		return nil, false
	}
	return expenses, true
}

func (s *ExpenseService) toCache(ctx context.Context, owner string, gen int64, expenses []expense.Expense) {
	data, err := json.Marshal(expenses)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal expenses for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, listCacheKey(owner, gen), data); err != nil {
		s.logger.WarnContext(ctx, "failed to write expense cache", "user_id", owner, "error", err)
	}
}

// invalidate bumps the owner's generation, retiring every cached list. The
// write already succeeded, so a cache failure is logged rather than returned.
func (s *ExpenseService) invalidate(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, generationKey(owner)); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate expense cache", "user_id", owner, "error", err)
	}
}
