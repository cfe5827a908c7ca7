package handlers

import (
	"net/http"

	"launchcanvas/atlas/pkg/gateway"
)

// HealthHandler serves liveness checks.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	_ = gateway.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
