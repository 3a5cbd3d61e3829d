package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"go-expense-tracker/internal/core/domain"
)

// Error codes carried in Envelope.Error.
const (
	CodeMissingFields      = "MissingFields"
	CodeDuplicateUser      = "DuplicateUser"
	CodeUserNotFound       = "UserNotFound"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeInvalidToken       = "InvalidToken"
	CodeExpiredToken       = "ExpiredToken"
	CodeNotFound           = "NotFound"
	CodeValidation         = "ValidationError"
	CodeConflict           = "Conflict"
	CodeForbidden          = "Forbidden"
	CodeInternal           = "InternalError"
)

type failure struct {
	status  int
	message string
	code    string
}

// classify maps a domain error onto its HTTP failure. Specific errors are
// matched before the kinds they wrap.
func classify(err error) (failure, bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return failure{http.StatusBadRequest, "Please fill out all the fields", CodeMissingFields}, true
	case errors.Is(err, domain.ErrDuplicateUser):
		return failure{http.StatusBadRequest, "User already exists with same username", CodeDuplicateUser}, true
	case errors.Is(err, domain.ErrUserNotFound):
		return failure{http.StatusNotFound, "User not found", CodeUserNotFound}, true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return failure{http.StatusForbidden, "Unauthorized", CodeInvalidCredentials}, true
	case errors.Is(err, domain.ErrExpiredToken):
		return failure{http.StatusUnauthorized, "Unauthorized", CodeExpiredToken}, true
	case errors.Is(err, domain.ErrUnauthorized):
		return failure{http.StatusUnauthorized, "Unauthorized", CodeInvalidToken}, true
	case errors.Is(err, domain.ErrExpenseNotFound):
		return failure{http.StatusNotFound, "Expense not found", CodeNotFound}, true
	case errors.Is(err, domain.ErrNotFound):
		return failure{http.StatusNotFound, "Not found", CodeNotFound}, true
	case errors.Is(err, domain.ErrValidation):
		return failure{http.StatusBadRequest, err.Error(), CodeValidation}, true
	case errors.Is(err, domain.ErrConflict):
		return failure{http.StatusBadRequest, "Conflict", CodeConflict}, true
	case errors.Is(err, domain.ErrForbidden):
		return failure{http.StatusForbidden, "Forbidden", CodeForbidden}, true
	}
	return failure{}, false
}

// respondError writes the failure envelope for err. Errors outside the
// domain taxonomy are logged in full and answered with an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if f, ok := classify(err); ok {
		respondFailure(w, f.status, f.message, f.code)
		return
	}

	logger.ErrorContext(r.Context(), "request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFrom(r.Context()),
	)
	respondInternal(w)
}

func respondInternal(w http.ResponseWriter) {
	respondFailure(w, http.StatusInternalServerError, "Internal Server Error", CodeInternal)
}
