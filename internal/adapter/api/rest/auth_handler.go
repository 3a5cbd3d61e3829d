package rest

import (
	"log/slog"
	"net/http"

	"go-expense-tracker/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service ports.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// Register handles POST /api/user/register
//
//	@Summary	Register a user
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		credentialsRequest	true	"Credentials"
//	@Success	201		{object}	Envelope
//	@Failure	400		{object}	Envelope
//	@Failure	500		{object}	Envelope
//	@Router		/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.UserID, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, "User registered successfully", registerResponse{UserID: user.UserID})
}

// Login handles POST /api/user/login
//
//	@Summary	Log in and receive a bearer token
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		credentialsRequest	true	"Credentials"
//	@Success	200		{object}	Envelope
//	@Failure	400		{object}	Envelope
//	@Failure	403		{object}	Envelope
//	@Failure	404		{object}	Envelope
//	@Router		/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, "Login successful", loginResponse{UserID: user.UserID, Token: token})
}
