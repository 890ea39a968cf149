package services_test

import (
	"sync"
	"testing"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/repository"
	"github.com/abrezinsky/cubeplan/internal/services"
	"github.com/abrezinsky/cubeplan/internal/testutil"
)

// recordingBroadcaster captures broadcasts for assertions
type recordingBroadcaster struct {
	mu      sync.Mutex
	plans   map[string][]*services.Plan
	deleted []string
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{plans: make(map[string][]*services.Plan)}
}

func (b *recordingBroadcaster) BroadcastPlan(competitionID string, plan *services.Plan) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.plans[competitionID] = append(b.plans[competitionID], plan)
}

func (b *recordingBroadcaster) BroadcastDeleted(competitionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, competitionID)
}

func newCompetitionService(t *testing.T, repo repository.FullRepository) *services.CompetitionService {
	t.Helper()
	if repo == nil {
		repo = testutil.NewTestRepository(t)
	}
	return services.NewCompetitionService(logger.Discard(), repo, catalog.Default())
}

func newPlanService(t *testing.T, repo repository.FullRepository) *services.PlanService {
	t.Helper()
	if repo == nil {
		repo = testutil.NewTestRepository(t)
	}
	return services.NewPlanService(logger.Discard(), repo, catalog.Default())
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }
