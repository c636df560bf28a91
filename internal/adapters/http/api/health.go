// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// healthResponse mirrors the fixed health payload. It is deliberately not
// enveloped: health never fails.
type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Timestamp   string `json:"timestamp"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	environment string
	port        int
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(environment string, port int) *HealthHandler {
	return &HealthHandler{environment: environment, port: port}
}

// HandleHealth handles GET /api/health requests. Always 200; no warehouse
// round trip is made.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Environment: h.environment,
		Port:        h.port,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
