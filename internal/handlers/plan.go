package handlers

import (
	"bytes"
	"net/http"

	"github.com/abrezinsky/cubeplan/internal/export"
	"github.com/abrezinsky/cubeplan/internal/planner"
)

// handlePlan computes a plan from the request body without storing anything
func (h *Handlers) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	plan, err := h.Plans.PlanConfig(req.toConfig(), req.Settings)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, plan)
}

// handleGetCompetitionPlan returns the current plan of a stored competition
// without changing it
func (h *Handlers) handleGetCompetitionPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Plans.Preview(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, plan)
}

// handleCompetitionPlan plans a stored competition, persisting round clamps
// and notifying live subscribers
func (h *Handlers) handleCompetitionPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Plans.Plan(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, plan)
}

func (h *Handlers) handleEstimatesCSV(w http.ResponseWriter, r *http.Request) {
	h.respondTableCSV(w, r, "estimates.csv", (*planner.Plan).EstimateTable)
}

func (h *Handlers) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	h.respondTableCSV(w, r, "schedule.csv", (*planner.Plan).ScheduleTable)
}

// respondTableCSV renders one table of the competition's current plan as a
// CSV download
func (h *Handlers) respondTableCSV(w http.ResponseWriter, r *http.Request, filename string, table func(*planner.Plan) planner.Table) {
	plan, err := h.Plans.Preview(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table(plan.Plan)); err != nil {
		h.respondError(w, r, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleSchedulePage serves the public plain-text timetable linked from the
// share QR code
func (h *Handlers) handleSchedulePage(w http.ResponseWriter, r *http.Request) {
	id := competitionID(r)
	c, err := h.Competitions.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	plan, err := h.Plans.Preview(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	buf.WriteString(c.Name + "\n\n")
	if err := export.WritePlan(&buf, plan.Plan, export.FormatText); err != nil {
		h.respondError(w, r, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleShare returns the public schedule URL and the QR code endpoint
func (h *Handlers) handleShare(w http.ResponseWriter, r *http.Request) {
	id := competitionID(r)
	url, err := h.Share.ScheduleURL(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, ShareResponse{URL: url, QR: "/api/competitions/" + id + "/qr"})
}

// handleQRCode serves a PNG QR code of the public schedule URL
func (h *Handlers) handleQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Share.QRCode(r.Context(), competitionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
