package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleListCompetitions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Competitions.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, list)
}

func (h *Handlers) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	c, err := h.Competitions.Get(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, c)
}

func (h *Handlers) handleCreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req CompetitionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Competitions.Create(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondCreated(w, c)
}

func (h *Handlers) handleUpdateCompetition(w http.ResponseWriter, r *http.Request) {
	var req CompetitionUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Competitions.Update(r.Context(), competitionID(r), req.toUpdate())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, c)
}

func (h *Handlers) handleDeleteCompetition(w http.ResponseWriter, r *http.Request) {
	if err := h.Competitions.Delete(r.Context(), competitionID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondDeleted(w)
}

// handleSelectCategories replaces the category selection
func (h *Handlers) handleSelectCategories(w http.ResponseWriter, r *http.Request) {
	var req SelectCategoriesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Competitions.SelectCategories(r.Context(), competitionID(r), req.Categories)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, c)
}

// handleUpdateCategorySettings stores the round settings of one selected
// category and returns them as normalised
func (h *Handlers) handleUpdateCategorySettings(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(chi.URLParam(r, "category"))
	if category == "" {
		h.respondError(w, r, BadRequest("Missing category"))
		return
	}

	var req CategorySettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	s, err := h.Competitions.UpdateCategorySettings(r.Context(), competitionID(r), category, req.toSettings())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, s)
}

// handleResetCompetition clears every category setting and the competitor count
func (h *Handlers) handleResetCompetition(w http.ResponseWriter, r *http.Request) {
	c, err := h.Competitions.Reset(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, c)
}
