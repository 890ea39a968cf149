package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// CompetitionUpdate carries the fields of a competition to change. Nil
// fields are left as they are.
type CompetitionUpdate struct {
	Name             *string
	TotalCompetitors *int
	MainEvent        *string
	Days             []models.DayWindow
}

// CompetitionService handles competition-related business logic
type CompetitionService struct {
	log         logger.Logger
	repo        repository.FullRepository
	catalog     *catalog.Catalog
	broadcaster Broadcaster
	newID       func() string
}

// NewCompetitionService creates a new CompetitionService
func NewCompetitionService(log logger.Logger, repo repository.FullRepository, cat *catalog.Catalog) *CompetitionService {
	return &CompetitionService{
		log:     log,
		repo:    repo,
		catalog: cat,
		newID:   uuid.NewString,
	}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *CompetitionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create stores a new competition with one competitor, no categories and
// the default competition days.
func (s *CompetitionService) Create(ctx context.Context, name string) (*models.Competition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UTC()
	c := &models.Competition{
		ID:   s.newID(),
		Name: name,
		Config: models.CompetitionConfig{
			TotalCompetitors: 1,
			Days:             models.DefaultDays(),
		},
		Settings:  map[string]models.CategorySettings{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCompetition(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("Competition created", "id", c.ID, "name", c.Name)
	return c, nil
}

// Get returns a competition with its configuration and settings
func (s *CompetitionService) Get(ctx context.Context, id string) (*models.Competition, error) {
	c, err := s.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, competitionError(err, id)
	}
	return c, nil
}

// List returns all competitions, most recently updated first
func (s *CompetitionService) List(ctx context.Context) ([]models.CompetitionSummary, error) {
	return s.repo.ListCompetitions(ctx)
}

// Update applies u to a competition. The competitor total must be at least
// one, there must be one to three valid day windows, and the main event
// must be a selected category.
func (s *CompetitionService) Update(ctx context.Context, id string, u CompetitionUpdate) (*models.Competition, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := c.Name
	if u.Name != nil {
		name = strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
	}

	total := c.Config.TotalCompetitors
	if u.TotalCompetitors != nil {
		total = *u.TotalCompetitors
		if err := validateCompetitors(total); err != nil {
			return nil, err
		}
	}

	mainEvent := c.Config.MainEvent
	if u.MainEvent != nil {
		mainEvent = *u.MainEvent
		unset := mainEvent == "" && len(c.Config.Categories) == 0
		if !unset && !c.Config.HasCategory(mainEvent) {
			return nil, ErrMainEventNotChosen
		}
	}

	if u.Days != nil {
		if err := validateDays(u.Days); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateCompetition(ctx, id, name, total, mainEvent); err != nil {
		return nil, competitionError(err, id)
	}
	if u.Days != nil {
		if err := s.repo.ReplaceDays(ctx, id, u.Days); err != nil {
			return nil, competitionError(err, id)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a competition and notifies its subscribers
func (s *CompetitionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteCompetition(ctx, id); err != nil {
		return competitionError(err, id)
	}
	s.log.Info("Competition deleted", "id", id)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDeleted(id)
	}
	return nil
}

// SelectCategories makes names the selected categories of a competition, in
// that order. Newly selected categories get the default settings, existing
// ones keep theirs, and deselected ones lose them. The main event follows
// models.ChooseMainEvent.
func (s *CompetitionService) SelectCategories(ctx context.Context, id string, names []string) (*models.Competition, error) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !s.catalog.Has(name) {
			return nil, errors.Validationf("unknown category %q", name)
		}
		if seen[name] {
			return nil, errors.Validationf("category %q selected twice", name)
		}
		seen[name] = true
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, name := range c.Config.Categories {
		if seen[name] {
			continue
		}
		if err := s.repo.DeleteCategorySettings(ctx, id, name); err != nil {
			return nil, err
		}
	}

	for i, name := range names {
		settings, ok := c.Settings[name]
		if !ok {
			settings = models.DefaultSettings()
		}
		row := repository.CategoryRow{Category: name, DisplayOrder: i, Settings: settings}
		if err := s.repo.UpsertCategorySettings(ctx, id, row); err != nil {
			return nil, competitionError(err, id)
		}
	}

	mainEvent := models.ChooseMainEvent(c.Config.MainEvent, names)
	if mainEvent != c.Config.MainEvent {
		if err := s.repo.UpdateCompetition(ctx, id, c.Name, c.Config.TotalCompetitors, mainEvent); err != nil {
			return nil, competitionError(err, id)
		}
	}

	s.log.Info("Categories selected", "id", id, "categories", strings.Join(names, ","), "main_event", mainEvent)
	return s.Get(ctx, id)
}

// UpdateCategorySettings stores the settings of one selected category and
// returns what was stored. Rounds must be 1 to 4, the cutoff "none" or
// MM:SS, and the final at least two competitors. Advancement percentages
// are clamped to 25-75; zero means unset.
func (s *CompetitionService) UpdateCategorySettings(ctx context.Context, id, category string, settings models.CategorySettings) (models.CategorySettings, error) {
	rows, err := s.repo.ListCategorySettings(ctx, id)
	if err != nil {
		return models.CategorySettings{}, err
	}
	order := -1
	for _, row := range rows {
		if row.Category == category {
			order = row.DisplayOrder
			break
		}
	}
	if order < 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return models.CategorySettings{}, err
		}
		return models.CategorySettings{}, ErrCategoryNotSelected
	}

	normalized, err := normalizeSettings(settings)
	if err != nil {
		return models.CategorySettings{}, err
	}

	row := repository.CategoryRow{Category: category, DisplayOrder: order, Settings: normalized}
	if err := s.repo.UpsertCategorySettings(ctx, id, row); err != nil {
		return models.CategorySettings{}, competitionError(err, id)
	}
	return normalized, nil
}

// Reset sets the competitor total back to one and deselects every
// category. Competition days are kept.
func (s *CompetitionService) Reset(ctx context.Context, id string) (*models.Competition, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearCategorySettings(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCompetition(ctx, id, c.Name, 1, ""); err != nil {
		return nil, competitionError(err, id)
	}

	s.log.Info("Competition reset", "id", id)
	return s.Get(ctx, id)
}
