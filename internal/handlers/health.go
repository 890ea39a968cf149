package handlers

import "net/http"

// handleHealth reports whether the server and its database are reachable
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health.Ping(r.Context()); err != nil {
			if h.Log != nil {
				h.Log.Error("Health check failed", "error", err)
			}
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
	}
	respondOK(w, HealthResponse{Status: "ok"})
}
