package services

import (
	"context"

	"github.com/abrezinsky/cubeplan/internal/models"
)

// CompetitionServicer defines the interface for competition management
type CompetitionServicer interface {
	Create(ctx context.Context, name string) (*models.Competition, error)
	Get(ctx context.Context, id string) (*models.Competition, error)
	List(ctx context.Context) ([]models.CompetitionSummary, error)
	Update(ctx context.Context, id string, u CompetitionUpdate) (*models.Competition, error)
	Delete(ctx context.Context, id string) error
	SelectCategories(ctx context.Context, id string, names []string) (*models.Competition, error)
	UpdateCategorySettings(ctx context.Context, id, category string, s models.CategorySettings) (models.CategorySettings, error)
	Reset(ctx context.Context, id string) (*models.Competition, error)
}

// PlanServicer defines the interface for estimation and scheduling
type PlanServicer interface {
	Plan(ctx context.Context, id string) (*Plan, error)
	Preview(ctx context.Context, id string) (*Plan, error)
	PlanConfig(cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (*Plan, error)
	Stations(total int) (int, error)
}

// ShareServicer defines the interface for publishing a competition schedule
type ShareServicer interface {
	ScheduleURL(ctx context.Context, id string) (string, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// SettingsServicer defines the interface for application settings
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	UpdateSettings(ctx context.Context, settings Settings) error
}

// Broadcaster pushes plan changes to live subscribers of a competition
type Broadcaster interface {
	BroadcastPlan(competitionID string, plan *Plan)
	BroadcastDeleted(competitionID string)
}

// Compile-time interface checks
var (
	_ CompetitionServicer = (*CompetitionService)(nil)
	_ PlanServicer        = (*PlanService)(nil)
	_ ShareServicer       = (*ShareService)(nil)
	_ SettingsServicer    = (*SettingsService)(nil)
)
