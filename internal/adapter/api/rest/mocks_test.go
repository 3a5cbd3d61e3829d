package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/domain/expense"
)

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, owner string, draft expense.Draft) (expense.Expense, error) {
	args := m.Called(ctx, owner, draft)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context, owner string) ([]expense.Expense, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, owner, id string, patch expense.Patch) (expense.Expense, error) {
	args := m.Called(ctx, owner, id, patch)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, userID, password string) (auth.User, error) {
	args := m.Called(ctx, userID, password)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, userID, password string) (auth.User, string, error) {
	args := m.Called(ctx, userID, password)
	return args.Get(0).(auth.User), args.String(1), args.Error(2)
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

type envelopeBody struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func errorCode(env envelopeBody) string {
	if env.Error == nil {
		return ""
	}
	return *env.Error
}

func slogToBuilder(b *strings.Builder) *slog.Logger {
	return slog.New(slog.NewJSONHandler(b, nil))
}
