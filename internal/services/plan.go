package services

import (
	"context"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/planner"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// Plan is a computed plan, tagged with its competition when it was built
// from a stored one.
type Plan struct {
	CompetitionID string `json:"competition_id,omitempty"`
	Stations      int    `json:"stations"`
	*planner.Plan
}

// PlanService runs the estimator and scheduler over stored or ad-hoc
// competitions
type PlanService struct {
	log         logger.Logger
	repo        repository.FullRepository
	catalog     *catalog.Catalog
	broadcaster Broadcaster
}

// NewPlanService creates a new PlanService
func NewPlanService(log logger.Logger, repo repository.FullRepository, cat *catalog.Catalog) *PlanService {
	return &PlanService{log: log, repo: repo, catalog: cat}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *PlanService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Plan builds the plan of a stored competition. Round counts the
// regulations force down are written back to the store, and the result is
// pushed to the competition's live subscribers.
func (s *PlanService) Plan(ctx context.Context, id string) (*Plan, error) {
	p, err := s.Preview(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, clamp := range p.Estimates.Clamps {
		if err := s.repo.SetRoundCount(ctx, id, clamp.Category, clamp.Allowed); err != nil {
			return nil, err
		}
		s.log.Warn("Round count reduced", "competition", id, "category", clamp.Category,
			"requested", clamp.Requested, "allowed", clamp.Allowed)
	}
	for _, w := range p.Warnings {
		s.log.Warn("Plan warning", "competition", id, "warning", w)
	}
	s.log.Debug("Plan computed", "competition", id, "stations", p.Stations,
		"blocks", len(p.Timetable.Blocks), "unscheduled", len(p.Timetable.Unscheduled))

	if s.broadcaster != nil {
		s.broadcaster.BroadcastPlan(id, p)
	}
	return p, nil
}

// Preview builds the plan of a stored competition without writing clamps
// back or notifying subscribers.
func (s *PlanService) Preview(ctx context.Context, id string) (*Plan, error) {
	c, err := s.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, competitionError(err, id)
	}
	p, err := s.build(c.Config, c.Settings)
	if err != nil {
		return nil, err
	}
	p.CompetitionID = id
	return p, nil
}

// PlanConfig builds a plan without touching the store. The request is held
// to the limits stored competitions are validated against on write.
func (s *PlanService) PlanConfig(cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (*Plan, error) {
	settings, err := validateConfig(cfg, settings)
	if err != nil {
		return nil, err
	}
	return s.build(cfg, settings)
}

func (s *PlanService) build(cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (*Plan, error) {
	p, err := planner.Build(s.catalog, cfg, settings)
	if err != nil {
		return nil, err
	}
	return &Plan{Stations: p.Estimates.Stations, Plan: p}, nil
}

// Stations returns the number of solving stations a competition of total
// competitors needs.
func (s *PlanService) Stations(total int) (int, error) {
	if total < 1 || total > models.MaxCompetitors {
		return 0, errors.InvalidInputf("competitors must be between 1 and %d, got %d", models.MaxCompetitors, total)
	}
	return planner.StationCount(total), nil
}
