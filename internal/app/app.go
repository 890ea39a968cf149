package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/cubeplan/internal/auth"
	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/config"
	"github.com/abrezinsky/cubeplan/internal/handlers"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/repository"
	"github.com/abrezinsky/cubeplan/internal/services"
	"github.com/abrezinsky/cubeplan/internal/websocket"
)

// sessionPruneInterval is how often expired organiser sessions are dropped
const sessionPruneInterval = 15 * time.Minute

// App holds all application dependencies
type App struct {
	log      logger.Logger
	cfg      *config.Config
	handlers *handlers.Handlers
	repo     *repository.Repository
	settings *services.SettingsService
	auth     *auth.Auth
	baseURL  string
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config, cat *catalog.Catalog, adminAuth *auth.Auth) (*App, error) {
	repo, err := repository.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Initialize services
	settingsService := services.NewSettingsService(log, repo)
	competitionService := services.NewCompetitionService(log, repo, cat)
	planService := services.NewPlanService(log, repo, cat)
	shareService := services.NewShareService(log, repo, settingsService)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, planService)
	hub.Start()
	planService.SetBroadcaster(hub)
	competitionService.SetBroadcaster(hub)

	h := handlers.New(handlers.Config{
		Competitions: competitionService,
		Plans:        planService,
		Share:        shareService,
		Settings:     settingsService,
		Catalog:      cat,
		Auth:         adminAuth,
		Hub:          hub,
		Health:       repo,
		Log:          log,
		CORSOrigins:  cfg.Server.CORSOrigins,
	})

	return &App{
		log:      log,
		cfg:      cfg,
		handlers: h,
		repo:     repo,
		settings: settingsService,
		auth:     adminAuth,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases the database
func (a *App) Close() error {
	return a.repo.Close()
}

// Addr returns the listen address
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.cfg.Server.Port)
}

// BaseURL returns the address the planner is reachable at. It is known once
// Run has configured it.
func (a *App) BaseURL() string {
	if a.baseURL != "" {
		return a.baseURL
	}
	return fmt.Sprintf("http://localhost%s", a.Addr())
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully within the configured timeout
func (a *App) Run(ctx context.Context) error {
	a.configureBaseURL(ctx)

	server := &http.Server{
		Addr:              a.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.pruneSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", "url", a.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down", "timeout", a.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// configureBaseURL stores the configured base URL, or the detected LAN
// address when none is configured
func (a *App) configureBaseURL(ctx context.Context) {
	if configured := a.cfg.Server.BaseURL; configured != "" {
		if err := a.settings.SetBaseURL(ctx, configured); err != nil {
			a.log.Warn("Ignoring configured base URL", "url", configured, "error", err)
		} else {
			a.baseURL = strings.TrimRight(configured, "/")
			return
		}
	}

	ip := getPreferredIP(realNetworkProvider{})
	a.baseURL = fmt.Sprintf("http://%s%s", ip, a.Addr())
	a.setDefaultBaseURL(a.baseURL)
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, _ := a.repo.GetSetting(ctx, "base_url")

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.repo.SetSetting(ctx, "base_url", baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}

// pruneSessions drops expired organiser sessions until ctx is cancelled
func (a *App) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.auth.PruneExpired(); n > 0 {
				a.log.Debug("Pruned expired sessions", "count", n)
			}
		}
	}
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider lists network interfaces
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IPv4 address for phones on the venue
// network to reach the planner. Private addresses win, then any other
// non-loopback address, then localhost.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		if ip.IsPrivate() {
			return ip.String()
		}
	}
	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return "localhost"
}
