package mock

import (
	"context"

	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SetRoundCountError = errors.New("database error")
//	svc := services.NewPlanService(log, mockRepo, catalog.Default())
//	_, err := svc.Plan(ctx, id)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Competition Errors =====
	CreateCompetitionError error
	GetCompetitionError    error
	ListCompetitionsError  error
	UpdateCompetitionError error
	ReplaceDaysError       error
	DeleteCompetitionError error

	// ===== Category Settings Errors =====
	ListCategorySettingsError   error
	UpsertCategorySettingsError error
	DeleteCategorySettingsError error
	SetRoundCountError          error
	ClearCategorySettingsError  error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Competition Methods =====

func (m *Repository) CreateCompetition(ctx context.Context, c *models.Competition) error {
	if m.CreateCompetitionError != nil {
		return m.CreateCompetitionError
	}
	return m.FullRepository.CreateCompetition(ctx, c)
}

func (m *Repository) GetCompetition(ctx context.Context, id string) (*models.Competition, error) {
	if m.GetCompetitionError != nil {
		return nil, m.GetCompetitionError
	}
	return m.FullRepository.GetCompetition(ctx, id)
}

func (m *Repository) ListCompetitions(ctx context.Context) ([]models.CompetitionSummary, error) {
	if m.ListCompetitionsError != nil {
		return nil, m.ListCompetitionsError
	}
	return m.FullRepository.ListCompetitions(ctx)
}

func (m *Repository) UpdateCompetition(ctx context.Context, id, name string, totalCompetitors int, mainEvent string) error {
	if m.UpdateCompetitionError != nil {
		return m.UpdateCompetitionError
	}
	return m.FullRepository.UpdateCompetition(ctx, id, name, totalCompetitors, mainEvent)
}

func (m *Repository) ReplaceDays(ctx context.Context, id string, days []models.DayWindow) error {
	if m.ReplaceDaysError != nil {
		return m.ReplaceDaysError
	}
	return m.FullRepository.ReplaceDays(ctx, id, days)
}

func (m *Repository) DeleteCompetition(ctx context.Context, id string) error {
	if m.DeleteCompetitionError != nil {
		return m.DeleteCompetitionError
	}
	return m.FullRepository.DeleteCompetition(ctx, id)
}

// ===== Category Settings Methods =====

func (m *Repository) ListCategorySettings(ctx context.Context, competitionID string) ([]repository.CategoryRow, error) {
	if m.ListCategorySettingsError != nil {
		return nil, m.ListCategorySettingsError
	}
	return m.FullRepository.ListCategorySettings(ctx, competitionID)
}

func (m *Repository) UpsertCategorySettings(ctx context.Context, competitionID string, row repository.CategoryRow) error {
	if m.UpsertCategorySettingsError != nil {
		return m.UpsertCategorySettingsError
	}
	return m.FullRepository.UpsertCategorySettings(ctx, competitionID, row)
}

func (m *Repository) DeleteCategorySettings(ctx context.Context, competitionID, category string) error {
	if m.DeleteCategorySettingsError != nil {
		return m.DeleteCategorySettingsError
	}
	return m.FullRepository.DeleteCategorySettings(ctx, competitionID, category)
}

func (m *Repository) SetRoundCount(ctx context.Context, competitionID, category string, rounds int) error {
	if m.SetRoundCountError != nil {
		return m.SetRoundCountError
	}
	return m.FullRepository.SetRoundCount(ctx, competitionID, category, rounds)
}

func (m *Repository) ClearCategorySettings(ctx context.Context, competitionID string) error {
	if m.ClearCategorySettingsError != nil {
		return m.ClearCategorySettingsError
	}
	return m.FullRepository.ClearCategorySettings(ctx, competitionID)
}

// ===== Settings Methods =====

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

var _ repository.FullRepository = (*Repository)(nil)
