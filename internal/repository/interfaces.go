package repository

import (
	"context"

	"github.com/abrezinsky/cubeplan/internal/models"
)

// CategoryRow is one selected category of a competition with its settings.
type CategoryRow struct {
	Category     string
	DisplayOrder int
	Settings     models.CategorySettings
}

// CompetitionRepository defines competition data operations
type CompetitionRepository interface {
	CreateCompetition(ctx context.Context, c *models.Competition) error
	GetCompetition(ctx context.Context, id string) (*models.Competition, error)
	ListCompetitions(ctx context.Context) ([]models.CompetitionSummary, error)
	UpdateCompetition(ctx context.Context, id, name string, totalCompetitors int, mainEvent string) error
	ReplaceDays(ctx context.Context, id string, days []models.DayWindow) error
	DeleteCompetition(ctx context.Context, id string) error
}

// CategorySettingsRepository defines per-category settings operations
type CategorySettingsRepository interface {
	ListCategorySettings(ctx context.Context, competitionID string) ([]CategoryRow, error)
	UpsertCategorySettings(ctx context.Context, competitionID string, row CategoryRow) error
	DeleteCategorySettings(ctx context.Context, competitionID, category string) error
	SetRoundCount(ctx context.Context, competitionID, category string, rounds int) error
	ClearCategorySettings(ctx context.Context, competitionID string) error
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	CompetitionRepository
	CategorySettingsRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
