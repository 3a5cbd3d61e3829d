package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the body of every JSON response. Error carries a stable
// code on failure and is null on success.
type Envelope struct {
	Status  int     `json:"status"`
	Message string  `json:"message"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

var emptyData = []any{}

func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = emptyData
	}
	write(w, Envelope{Status: status, Message: message, Data: data})
}

func respondFailure(w http.ResponseWriter, status int, message, code string) {
	write(w, Envelope{Status: status, Message: message, Data: emptyData, Error: &code})
}

func write(w http.ResponseWriter, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
