package handlers

import (
	"context"
	"net/http"

	"github.com/abrezinsky/cubeplan/internal/auth"
	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/services"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Competitions services.CompetitionServicer
	Plans        services.PlanServicer
	Share        services.ShareServicer
	Settings     services.SettingsServicer
	Catalog      *catalog.Catalog
	Auth         *auth.Auth
	Hub          http.Handler
	Health       Pinger
	Log          HTTPLogger
	CORSOrigins  []string
}

// HTTPLogger is the logging surface the handlers need
type HTTPLogger interface {
	Error(msg string, args ...any)
	IsHTTPLoggingEnabled() bool
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the dependencies of New
type Config struct {
	Competitions services.CompetitionServicer
	Plans        services.PlanServicer
	Share        services.ShareServicer
	Settings     services.SettingsServicer
	Catalog      *catalog.Catalog
	Auth         *auth.Auth
	Hub          http.Handler
	Health       Pinger
	Log          HTTPLogger
	CORSOrigins  []string
}

// New creates a new Handlers instance with all dependencies
func New(cfg Config) *Handlers {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handlers{
		Competitions: cfg.Competitions,
		Plans:        cfg.Plans,
		Share:        cfg.Share,
		Settings:     cfg.Settings,
		Catalog:      cfg.Catalog,
		Auth:         cfg.Auth,
		Hub:          cfg.Hub,
		Health:       cfg.Health,
		Log:          cfg.Log,
		CORSOrigins:  origins,
	}
}

// NoopHTTPLogger is a test logger that discards errors and never logs requests
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) Error(msg string, args ...any) {}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance with a known organiser password
// and no websocket hub
func NewForTesting(
	competitions services.CompetitionServicer,
	plans services.PlanServicer,
	share services.ShareServicer,
	settings services.SettingsServicer,
	cat *catalog.Catalog,
) *Handlers {
	return New(Config{
		Competitions: competitions,
		Plans:        plans,
		Share:        share,
		Settings:     settings,
		Catalog:      cat,
		Auth:         auth.New("test-password"),
		Log:          NoopHTTPLogger{},
	})
}
