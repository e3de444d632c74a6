package handlers

import (
	"net/http"
)

// HealthResponse is the body returned by the health check
type HealthResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthCheck handles GET /health-status
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health-status [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Service: "API Star Wars HealthCheck",
		Version: "1.0",
	})
}
