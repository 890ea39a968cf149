package services_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/planner"
	"github.com/abrezinsky/cubeplan/internal/repository/mock"
	"github.com/abrezinsky/cubeplan/internal/testutil"
)

func TestPlanService_Plan(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	testutil.SeedCompetition(t, repo, "comp", 100, []string{"3x3", "2x2"},
		map[string]models.CategorySettings{
			"3x3": {Rounds: 2, Cutoff: models.CutoffNone, Advance: []int{50}, FinalSize: 8},
		})
	svc := newPlanService(t, repo)
	b := newRecordingBroadcaster()
	svc.SetBroadcaster(b)

	p, err := svc.Plan(context.Background(), "comp")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if p.CompetitionID != "comp" {
		t.Errorf("expected competition id, got %q", p.CompetitionID)
	}
	if p.Stations != 10 {
		t.Errorf("expected 10 stations, got %d", p.Stations)
	}
	if len(p.Estimates.Rows) != 2 {
		t.Fatalf("expected 2 estimate rows, got %d", len(p.Estimates.Rows))
	}
	if got := len(p.Estimates.Rows[0].Rounds); got != 2 {
		t.Errorf("expected 2 rounds of 3x3, got %d", got)
	}
	if len(p.Timetable.Blocks) == 0 {
		t.Error("expected a timetable")
	}
	if len(b.plans["comp"]) != 1 || b.plans["comp"][0] != p {
		t.Errorf("expected the plan to be broadcast once, got %v", b.plans)
	}
}

func TestPlanService_PlanPersistsRoundClamp(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	testutil.SeedCompetition(t, repo, "comp", 12, []string{"3x3"},
		map[string]models.CategorySettings{
			"3x3": {Rounds: 4, Cutoff: models.CutoffNone, FinalSize: 8},
		})
	svc := newPlanService(t, repo)
	ctx := context.Background()

	p, err := svc.Plan(ctx, "comp")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(p.Estimates.Clamps) != 1 || p.Estimates.Clamps[0].Allowed != 2 {
		t.Fatalf("expected a clamp to 2 rounds, got %+v", p.Estimates.Clamps)
	}
	if len(p.Warnings) == 0 {
		t.Error("expected the clamp to be reported as a warning")
	}

	c, err := repo.GetCompetition(ctx, "comp")
	if err != nil {
		t.Fatalf("GetCompetition failed: %v", err)
	}
	if got := c.Settings["3x3"].Rounds; got != 2 {
		t.Errorf("expected stored rounds 2, got %d", got)
	}

	// Planning again finds nothing left to clamp.
	p, err = svc.Plan(ctx, "comp")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(p.Estimates.Clamps) != 0 {
		t.Errorf("expected no clamps on the second pass, got %+v", p.Estimates.Clamps)
	}
}

func TestPlanService_PlanErrors(t *testing.T) {
	ctx := context.Background()

	svc := newPlanService(t, nil)
	if _, err := svc.Plan(ctx, "missing"); errors.KindOf(err) != errors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}

	real := testutil.NewTestRepository(t)
	testutil.SeedCompetition(t, real, "comp", 5, []string{"3x3"},
		map[string]models.CategorySettings{"3x3": {Rounds: 3, Cutoff: models.CutoffNone, FinalSize: 8}})
	repo := mock.NewRepository(real)
	repo.SetRoundCountError = stderrors.New("write failed")
	svc = newPlanService(t, repo)
	if _, err := svc.Plan(ctx, "comp"); err == nil {
		t.Error("expected the clamp write error")
	}

	repo = mock.NewRepository(real)
	repo.GetCompetitionError = stderrors.New("read failed")
	svc = newPlanService(t, repo)
	if _, err := svc.Plan(ctx, "comp"); err == nil || errors.KindOf(err) == errors.ErrNotFound {
		t.Errorf("expected the read error, got %v", err)
	}
}

func TestPlanService_PlanConfig(t *testing.T) {
	svc := newPlanService(t, nil)

	cfg := models.CompetitionConfig{
		TotalCompetitors: 40,
		Categories:       []string{"FMC"},
		MainEvent:        "FMC",
		Days:             []models.DayWindow{{Start: "09:00", End: "18:00"}},
	}
	p, err := svc.PlanConfig(cfg, nil)
	if err != nil {
		t.Fatalf("PlanConfig failed: %v", err)
	}
	if p.CompetitionID != "" {
		t.Errorf("expected no competition id, got %q", p.CompetitionID)
	}
	if p.Stations != 6 {
		t.Errorf("expected 6 stations, got %d", p.Stations)
	}
	if n := len(p.ScheduleTable().Rows); n != 3 {
		t.Errorf("expected registration, FMC and prize giving, got %d rows", n)
	}

	cfg.Categories = []string{"Magic"}
	if _, err := svc.PlanConfig(cfg, nil); errors.KindOf(err) != errors.ErrInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestPlanService_Stations(t *testing.T) {
	svc := newPlanService(t, nil)

	for _, total := range []int{1, 60, 100, 250} {
		got, err := svc.Stations(total)
		if err != nil {
			t.Fatalf("Stations(%d) failed: %v", total, err)
		}
		if want := planner.StationCount(total); got != want {
			t.Errorf("Stations(%d) = %d, want %d", total, got, want)
		}
	}

	if _, err := svc.Stations(0); errors.KindOf(err) != errors.ErrInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestPlanService_PreviewDoesNotPersist(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	testutil.SeedCompetition(t, repo, "comp", 12, []string{"3x3"},
		map[string]models.CategorySettings{
			"3x3": {Rounds: 4, Cutoff: models.CutoffNone, FinalSize: 8},
		})
	svc := newPlanService(t, repo)
	b := newRecordingBroadcaster()
	svc.SetBroadcaster(b)
	ctx := context.Background()

	p, err := svc.Preview(ctx, "comp")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if p.CompetitionID != "comp" || len(p.Estimates.Clamps) != 1 {
		t.Errorf("unexpected preview %+v", p)
	}
	if len(b.plans) != 0 {
		t.Errorf("expected no broadcast, got %v", b.plans)
	}

	c, err := repo.GetCompetition(ctx, "comp")
	if err != nil {
		t.Fatalf("GetCompetition failed: %v", err)
	}
	if got := c.Settings["3x3"].Rounds; got != 4 {
		t.Errorf("expected stored rounds untouched, got %d", got)
	}

	if _, err := svc.Preview(ctx, "missing"); errors.KindOf(err) != errors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPlanService_PlanConfigLimits(t *testing.T) {
	svc := newPlanService(t, nil)
	oneDay := []models.DayWindow{{Start: "09:00", End: "18:00"}}

	tests := []struct {
		name     string
		total    int
		days     []models.DayWindow
		settings map[string]models.CategorySettings
	}{
		{"too many competitors", models.MaxCompetitors + 1, oneDay, nil},
		{"no days", 100, nil, nil},
		{"four days", 100, append(models.DefaultDays(), models.DefaultDays()...), nil},
		{"five rounds", 100, oneDay, map[string]models.CategorySettings{
			"3x3": {Rounds: 5, Cutoff: models.CutoffNone, FinalSize: 8},
		}},
		{"runaway rounds", 1000, oneDay, map[string]models.CategorySettings{
			"3x3": {Rounds: 200000, Cutoff: models.CutoffNone, FinalSize: 8},
		}},
		{"bad cutoff", 100, oneDay, map[string]models.CategorySettings{
			"3x3": {Rounds: 1, Cutoff: "soon", FinalSize: 8},
		}},
		{"final too small", 100, oneDay, map[string]models.CategorySettings{
			"3x3": {Rounds: 2, Cutoff: models.CutoffNone, FinalSize: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.CompetitionConfig{
				TotalCompetitors: tt.total,
				Categories:       []string{"3x3"},
				MainEvent:        "3x3",
				Days:             tt.days,
			}
			if _, err := svc.PlanConfig(cfg, tt.settings); errors.KindOf(err) != errors.ErrValidation {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestPlanService_PlanConfigNormalizesAdvance(t *testing.T) {
	svc := newPlanService(t, nil)

	cfg := models.CompetitionConfig{
		TotalCompetitors: 100,
		Categories:       []string{"3x3"},
		MainEvent:        "3x3",
		Days:             models.DefaultDays(),
	}
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 3, Cutoff: " none ", Advance: []int{95, 50}, FinalSize: 8},
	}
	p, err := svc.PlanConfig(cfg, settings)
	if err != nil {
		t.Fatalf("PlanConfig failed: %v", err)
	}
	if got := p.Estimates.Rows[0].Rounds[1].Competitors; got > 75 {
		t.Errorf("expected the advancement clamped to 75%%, got %d in round 2", got)
	}
	for _, n := range p.Estimates.Notices {
		if strings.Contains(n, "advancement") {
			t.Errorf("expected the settings to be normalized before projection, got notice %q", n)
		}
	}
	if settings["3x3"].Advance[0] != 95 {
		t.Error("expected the caller's settings to be left unchanged")
	}
}

func TestPlanService_StationsUpperBound(t *testing.T) {
	svc := newPlanService(t, nil)

	if _, err := svc.Stations(models.MaxCompetitors + 1); errors.KindOf(err) != errors.ErrInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}
