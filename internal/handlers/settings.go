package handlers

import (
	"net/http"

	"github.com/abrezinsky/cubeplan/internal/services"
)

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Settings.UpdateSettings(r.Context(), services.Settings{BaseURL: req.BaseURL}); err != nil {
		h.respondError(w, r, err)
		return
	}

	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, SettingsResponse{BaseURL: baseURL})
}
