package rest

import (
	"log/slog"
	"net/http"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/ports"
)

type Handler struct {
	service ports.ExpenseService
	logger  *slog.Logger
}

func NewHandler(service ports.ExpenseService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// owner returns the authenticated user id placed in the context by
// AuthMiddleware.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, r, h.logger, domain.ErrMissingToken)
		return "", false
	}
	return identity.UserID, true
}

// Create handles POST /api/expense/create
//
//	@Summary	Create an expense
//	@Tags		expense
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createExpenseRequest	true	"Expense"
//	@Success	201		{object}	Envelope
//	@Failure	400		{object}	Envelope
//	@Failure	401		{object}	Envelope
//	@Router		/expense/create [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	created, err := h.service.Create(r.Context(), owner, draft)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Created expense successfully!", toExpenseResponse(created))
}

// List handles GET /api/expense/all
//
//	@Summary	List the caller's expenses, newest first
//	@Tags		expense
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope
//	@Failure	401	{object}	Envelope
//	@Router		/expense/all [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	expenses, err := h.service.List(r.Context(), owner)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	out := expenseListResponse{Count: len(expenses), Expenses: make([]expenseResponse, 0, len(expenses))}
	for _, e := range expenses {
		out.Expenses = append(out.Expenses, toExpenseResponse(e))
	}
	respondJSON(w, http.StatusOK, "Expenses fetched successfully", out)
}

// Update handles PUT /api/expense/update/{expenseId}
//
//	@Summary	Partially update an expense
//	@Tags		expense
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		expenseId	path		string					true	"Expense id"
//	@Param		body		body		updateExpenseRequest	true	"Fields to change"
//	@Success	200			{object}	Envelope
//	@Failure	400			{object}	Envelope
//	@Failure	404			{object}	Envelope
//	@Router		/expense/update/{expenseId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req updateExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), owner, r.PathValue("expenseId"), patch)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Expense updated successfully", toExpenseResponse(updated))
}

// Delete handles DELETE /api/expense/delete/{expenseId}
//
//	@Summary	Delete an expense
//	@Tags		expense
//	@Security	BearerAuth
//	@Produce	json
//	@Param		expenseId	path		string	true	"Expense id"
//	@Success	200			{object}	Envelope
//	@Failure	404			{object}	Envelope
//	@Router		/expense/delete/{expenseId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), owner, r.PathValue("expenseId")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Expense deleted", nil)
}
