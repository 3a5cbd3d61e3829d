package rest

import "net/http"

// Health handles GET /api/healthCheck. It touches no dependencies.
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	Envelope
//	@Router		/healthCheck [get]
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, "Server is running", nil)
}
