package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// SeedCompetition stores a competition with the given selection. Every
// category gets settings[name] when present, otherwise the defaults.
func SeedCompetition(t *testing.T, repo repository.FullRepository, id string, total int, categories []string, settings map[string]models.CategorySettings) *models.Competition {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	c := &models.Competition{
		ID:   id,
		Name: "Test Open " + id,
		Config: models.CompetitionConfig{
			TotalCompetitors: total,
			MainEvent:        models.ChooseMainEvent("", categories),
			Days:             models.DefaultDays(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateCompetition(ctx, c); err != nil {
		t.Fatalf("failed to seed competition: %v", err)
	}

	for i, name := range categories {
		s, ok := settings[name]
		if !ok {
			s = models.DefaultSettings()
		}
		row := repository.CategoryRow{Category: name, DisplayOrder: i, Settings: s}
		if err := repo.UpsertCategorySettings(ctx, id, row); err != nil {
			t.Fatalf("failed to seed settings for %s: %v", name, err)
		}
	}

	stored, err := repo.GetCompetition(ctx, id)
	if err != nil {
		t.Fatalf("failed to reload seeded competition: %v", err)
	}
	return stored
}
