package handlers

import "net/http"

// handleGetCatalog lists every category with its reference data
func (h *Handlers) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	respondOK(w, CatalogResponse{Categories: h.Catalog.Categories()})
}

// handleGetStations returns the number of solving stations for ?competitors=N
func (h *Handlers) handleGetStations(w http.ResponseWriter, r *http.Request) {
	total, err := parseIntQuery(r, "competitors")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	stations, err := h.Plans.Stations(total)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondOK(w, StationsResponse{Competitors: total, Stations: stations})
}
