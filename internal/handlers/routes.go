package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RedirectSlashes)

	r.Get("/healthz", h.handleHealth)

	// WebSocket (no timeout: connections are long-lived)
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Public timetable page
		r.Get("/competitions/{id}/schedule", h.handleSchedulePage)

		// Auth
		r.Post("/api/login", h.handleLogin)
		r.Post("/api/logout", h.handleLogout)

		// Planning (public)
		r.Get("/api/catalog", h.handleGetCatalog)
		r.Get("/api/stations", h.handleGetStations)
		r.Post("/api/plan", h.handlePlan)

		// Competitions (public reads)
		r.Get("/api/competitions", h.handleListCompetitions)
		r.Get("/api/competitions/{id}", h.handleGetCompetition)
		r.Get("/api/competitions/{id}/plan", h.handleGetCompetitionPlan)
		r.Get("/api/competitions/{id}/estimates.csv", h.handleEstimatesCSV)
		r.Get("/api/competitions/{id}/schedule.csv", h.handleScheduleCSV)
		r.Get("/api/competitions/{id}/share", h.handleShare)
		r.Get("/api/competitions/{id}/qr", h.handleQRCode)

		// Organiser API (protected)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuthAPI)

			r.Post("/api/competitions", h.handleCreateCompetition)
			r.Put("/api/competitions/{id}", h.handleUpdateCompetition)
			r.Delete("/api/competitions/{id}", h.handleDeleteCompetition)
			r.Put("/api/competitions/{id}/categories", h.handleSelectCategories)
			r.Put("/api/competitions/{id}/categories/{category}", h.handleUpdateCategorySettings)
			r.Post("/api/competitions/{id}/reset", h.handleResetCompetition)
			r.Post("/api/competitions/{id}/plan", h.handleCompetitionPlan)

			r.Get("/api/settings", h.handleGetSettings)
			r.Put("/api/settings", h.handleUpdateSettings)
		})
	})

	return r
}
