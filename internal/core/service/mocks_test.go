package service

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/domain/expense"
	"go-expense-tracker/internal/core/ports"
)

// Mocks

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUserID(ctx context.Context, userID string) (auth.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(auth.User), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, e expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListByOwner(ctx context.Context, owner string) (iter.Seq2[expense.Expense, error], error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq2[expense.Expense, error]), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, id, owner string, patch expense.Patch) (expense.Expense, error) {
	args := m.Called(ctx, id, owner, patch)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockCache) Generation(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// memCache is an in-memory ports.Cache for tests that need real cache state.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Generation(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key], nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	return c.gens[key], nil
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(identity auth.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Verify(token string) (auth.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

// Helper to silence logs
type testWriter struct{}

func (tw *testWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func seqOf(items ...expense.Expense) iter.Seq2[expense.Expense, error] {
	return func(yield func(expense.Expense, error) bool) {
		for _, e := range items {
			if !yield(e, nil) {
				return
			}
		}
	}
}
