package rest

import (
	"log/slog"
	"net/http"

	"github.com/swaggo/swag"

	_ "go-expense-tracker/docs"
	"go-expense-tracker/internal/core/ports"
)

// NewRouter registers the API routes and wraps them with mws.
func NewRouter(h *Handler, authH *AuthHandler, tokens ports.TokenService, logger *slog.Logger, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /api/healthCheck", Health)
	mux.HandleFunc("POST /api/user/register", authH.Register)
	mux.HandleFunc("POST /api/user/login", authH.Login)

	// Protected Routes
	auth := AuthMiddleware(tokens, logger)

	mux.Handle("POST /api/expense/create", auth(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/expense/all", auth(http.HandlerFunc(h.List)))
	mux.Handle("PUT /api/expense/update/{expenseId}", auth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/expense/delete/{expenseId}", auth(http.HandlerFunc(h.Delete)))

	// Documentation
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			respondError(w, r, logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	mux.HandleFunc("GET /api-docs", func(w http.ResponseWriter, r *http.Request) {
		html := `<!DOCTYPE html>
				<html lang="en">
				<head>
					<meta charset="utf-8" />
					<meta name="viewport" content="width=device-width, initial-scale=1" />
					<meta name="description" content="SwaggerUI" />
					<title>Expense Tracker API</title>
					<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
				</head>
				<body>
				<div id="swagger-ui"></div>
				<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
				<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-standalone-preset.js" crossorigin></script>
				<script>
					window.onload = () => {
						window.ui = SwaggerUIBundle({
							url: '/openapi.json',
							dom_id: '#swagger-ui',
							presets: [
								SwaggerUIBundle.presets.apis,
								SwaggerUIStandalonePreset
							],
							layout: "StandaloneLayout",
						});
					};
				</script>
				</body>
				</html>`
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondFailure(w, http.StatusNotFound, "Route not found", CodeNotFound)
	})

	// Wrap with middleware
	return Chain(mux, mws...)
}
