package handlers

import (
	"net/http"
	"vrp-route-viewer/internal/ports"
)

// HealthHandler is a liveness check that also reports how many locations
// the registry serves.
type HealthHandler struct {
	Registry ports.LocationRegistry
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	res := map[string]any{
		"status":    "ok",
		"locations": len(h.Registry.List()),
	}
	writeJSON(w, r, http.StatusOK, res)
}
