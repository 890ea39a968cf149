package planner

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
)

func newConfig(total int, categories ...string) models.CompetitionConfig {
	return models.CompetitionConfig{
		TotalCompetitors: total,
		Categories:       categories,
		MainEvent:        models.DefaultMainEvent,
		Days:             models.DefaultDays(),
	}
}

func hasNotice(est *Estimates, substr string) bool {
	for _, n := range est.Notices {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestProject_SingleRoundDefaults(t *testing.T) {
	est, err := Project(catalog.Default(), newConfig(100, "3x3"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if est.Stations != 10 {
		t.Errorf("expected 10 stations, got %d", est.Stations)
	}
	if len(est.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(est.Rows))
	}
	row := est.Rows[0]
	if row.Percentage != 97.49 {
		t.Errorf("expected percentage 97.49, got %v", row.Percentage)
	}
	if len(row.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(row.Rounds))
	}
	r1 := row.Rounds[0]
	want := RoundEstimate{Category: "3x3", Round: 1, Competitors: 100, Groups: 4, GroupSize: 25, Minutes: 90}
	if r1 != want {
		t.Errorf("round 1 = %+v, want %+v", r1, want)
	}
	if len(est.Notices) != 0 {
		t.Errorf("expected no notices, got %v", est.Notices)
	}
}

func TestProject_MultipleRounds(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 3, Cutoff: models.CutoffNone, Advance: []int{50, 50, 50}, FinalSize: 8},
	}

	est, err := Project(catalog.Default(), newConfig(100, "3x3"), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rounds := est.Rows[0].Rounds
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}

	tests := []struct {
		competitors int
		groups      int
		minutes     int
		final       bool
	}{
		{100, 4, 90, false},
		{50, 2, 45, false},
		{8, 1, 15, true},
	}
	for i, tt := range tests {
		r := rounds[i]
		if r.Round != i+1 {
			t.Errorf("round %d numbered %d", i+1, r.Round)
		}
		if r.Competitors != tt.competitors || r.Groups != tt.groups || r.Minutes != tt.minutes || r.Final != tt.final {
			t.Errorf("round %d = %+v, want competitors=%d groups=%d minutes=%d final=%v",
				i+1, r, tt.competitors, tt.groups, tt.minutes, tt.final)
		}
	}
}

func TestProject_FinalCappedAtThreeQuarters(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 2, Cutoff: models.CutoffNone, FinalSize: 20},
	}

	est, err := Project(catalog.Default(), newConfig(20, "3x3"), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rounds := est.Rows[0].Rounds
	if rounds[0].Competitors != 20 {
		t.Fatalf("expected 20 in round 1, got %d", rounds[0].Competitors)
	}
	if rounds[1].Competitors != 15 {
		t.Errorf("expected final capped to 15, got %d", rounds[1].Competitors)
	}
	if !hasNotice(est, "final size 20 exceeds 75%") {
		t.Errorf("expected a final size notice, got %v", est.Notices)
	}
}

func TestProject_NonPositiveFinalSizeUsesDefault(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 2, Cutoff: models.CutoffNone, FinalSize: 0},
	}

	est, err := Project(catalog.Default(), newConfig(100, "3x3"), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := est.Rows[0].Rounds[1].Competitors; got != models.DefaultFinalSize {
		t.Errorf("expected final of %d, got %d", models.DefaultFinalSize, got)
	}
}

func TestProject_RoundClamp(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 3, Cutoff: models.CutoffNone},
	}

	est, err := Project(catalog.Default(), newConfig(5, "3x3"), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(est.Rows[0].Rounds) != 1 {
		t.Errorf("expected the row clamped to 1 round, got %d", len(est.Rows[0].Rounds))
	}
	if len(est.Clamps) != 1 {
		t.Fatalf("expected 1 clamp, got %d", len(est.Clamps))
	}
	clamp := est.Clamps[0]
	if clamp.Category != "3x3" || clamp.Requested != 3 || clamp.Allowed != 1 {
		t.Errorf("unexpected clamp %+v", clamp)
	}
	if !hasNotice(est, "3x3: 7 or fewer competitors can only have 1 round") {
		t.Errorf("expected a clamp notice, got %v", est.Notices)
	}
}

func TestProject_AdvanceClamped(t *testing.T) {
	tests := []struct {
		name     string
		advance  int
		expected int
		notice   string
	}{
		{"above maximum", 90, 75, "capped at 75%"},
		{"below minimum", 10, 25, "raised to 25%"},
		{"in range", 40, 40, ""},
		{"unset uses fallback", 0, 75, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := map[string]models.CategorySettings{
				"3x3": {Rounds: 3, Cutoff: models.CutoffNone, Advance: []int{tt.advance}, FinalSize: 8},
			}
			est, err := Project(catalog.Default(), newConfig(100, "3x3"), settings)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := est.Rows[0].Rounds[1].Competitors; got != tt.expected {
				t.Errorf("round 2 competitors = %d, want %d", got, tt.expected)
			}
			if tt.notice != "" && !hasNotice(est, tt.notice) {
				t.Errorf("expected notice containing %q, got %v", tt.notice, est.Notices)
			}
			if tt.notice == "" && len(est.Notices) != 0 {
				t.Errorf("expected no notices, got %v", est.Notices)
			}
		})
	}
}

func TestProject_InvalidCutoffNotice(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 1, Cutoff: "soon"},
	}

	est, err := Project(catalog.Default(), newConfig(100, "3x3"), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Rows[0].Rounds[0].Minutes != 90 {
		t.Errorf("expected the default solve time to apply, got %d minutes", est.Rows[0].Rounds[0].Minutes)
	}
	if !hasNotice(est, `cutoff "soon"`) {
		t.Errorf("expected a cutoff notice, got %v", est.Notices)
	}
}

func TestProject_InvalidInput(t *testing.T) {
	if _, err := Project(catalog.Default(), newConfig(0, "3x3"), nil); errors.KindOf(err) != errors.ErrInvalidInput {
		t.Errorf("expected invalid input for zero competitors, got %v", err)
	}
	if _, err := Project(catalog.Default(), newConfig(50, "3x3", "Magic"), nil); errors.KindOf(err) != errors.ErrInvalidInput {
		t.Errorf("expected invalid input for an unknown category, got %v", err)
	}
}

func TestProject_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		settings map[string]models.CategorySettings
	}{
		{"too many competitors", models.MaxCompetitors + 1, nil},
		{"huge total", math.MaxInt, nil},
		{"too many rounds", 1000, map[string]models.CategorySettings{
			"3x3": {Rounds: models.MaxRoundsPerCategory + 1, Cutoff: models.CutoffNone, FinalSize: 8},
		}},
		{"absurd rounds", 1000, map[string]models.CategorySettings{
			"3x3": {Rounds: 200000, Cutoff: models.CutoffNone, FinalSize: 8},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := Project(catalog.Default(), newConfig(tt.total, "3x3"), tt.settings)
			if errors.KindOf(err) != errors.ErrInvalidInput {
				t.Errorf("expected invalid input, got %v (estimates %+v)", err, est)
			}
		})
	}

	est, err := Project(catalog.Default(), newConfig(models.MaxCompetitors, "3x3"), nil)
	if err != nil {
		t.Fatalf("expected the largest total to be accepted, got %v", err)
	}
	if got := est.Rows[0].Rounds[0].Competitors; got < models.MaxCompetitors*9/10 {
		t.Errorf("expected most of %d competitors in 3x3, got %d", models.MaxCompetitors, got)
	}
}

func TestProject_PreservesCategoryOrder(t *testing.T) {
	est, err := Project(catalog.Default(), newConfig(80, "Skewb", "3x3", "FMC"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, row := range est.Rows {
		got = append(got, row.Category)
	}
	if !reflect.DeepEqual(got, []string{"Skewb", "3x3", "FMC"}) {
		t.Errorf("unexpected row order %v", got)
	}
}

func TestProject_CompetitorsNeverIncrease(t *testing.T) {
	cat := catalog.Default()
	settings := make(map[string]models.CategorySettings)
	for _, name := range cat.Names() {
		settings[name] = models.CategorySettings{
			Rounds:    4,
			Cutoff:    models.CutoffNone,
			Advance:   []int{75, 75, 75},
			FinalSize: 500,
		}
	}

	for total := 1; total <= 500; total += 7 {
		est, err := Project(cat, newConfig(total, cat.Names()...), settings)
		if err != nil {
			t.Fatalf("total %d: unexpected error: %v", total, err)
		}
		for _, row := range est.Rows {
			for i := 1; i < len(row.Rounds); i++ {
				prev, cur := row.Rounds[i-1], row.Rounds[i]
				if cur.Competitors > prev.Competitors {
					t.Fatalf("total %d, %s: round %d has %d competitors, round %d had %d",
						total, row.Category, cur.Round, cur.Competitors, prev.Round, prev.Competitors)
				}
				if cur.Final && cur.Competitors > prev.Competitors*3/4 {
					t.Fatalf("total %d, %s: final of %d exceeds 75%% of %d",
						total, row.Category, cur.Competitors, prev.Competitors)
				}
			}
		}
	}
}

func TestProject_Idempotent(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 4, Cutoff: "3:00", Advance: []int{60, 50, 40}, FinalSize: 12},
		"4x4": {Rounds: 2, Cutoff: models.CutoffNone, FinalSize: 10},
	}
	cfg := newConfig(250, "3x3", "4x4", "FMC")

	first, err := Project(catalog.Default(), cfg, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Project(catalog.Default(), cfg, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical estimates for identical input")
	}
}

func TestProject_DoesNotModifySettings(t *testing.T) {
	settings := map[string]models.CategorySettings{
		"3x3": {Rounds: 4, Cutoff: models.CutoffNone, Advance: []int{90}, FinalSize: 50},
	}
	before := settings["3x3"].Clone()

	if _, err := Project(catalog.Default(), newConfig(30, "3x3"), settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(settings["3x3"], before) {
		t.Errorf("settings modified: %+v", settings["3x3"])
	}
}
