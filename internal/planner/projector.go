package planner

import (
	"fmt"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
)

const (
	// fallbackAdvancePercent applies when a non-final round has no
	// configured advancement.
	fallbackAdvancePercent = 75
	// finalCapNumerator/finalCapDenominator: a final keeps at most three
	// quarters of the previous round.
	finalCapNumerator   = 3
	finalCapDenominator = 4
)

// RoundEstimate is the projected size and duration of one round.
type RoundEstimate struct {
	Category    string `json:"category"`
	Round       int    `json:"round"`
	Competitors int    `json:"competitors"`
	Groups      int    `json:"groups"`
	GroupSize   int    `json:"group_size"`
	Minutes     int    `json:"minutes"`
	Final       bool   `json:"final"`
}

// Duration returns the round duration as HH:MM.
func (r RoundEstimate) Duration() string {
	return FormatHHMM(r.Minutes)
}

// EstimateRow holds every projected round of one category.
type EstimateRow struct {
	Category   string          `json:"category"`
	Percentage float64         `json:"percentage"`
	Rounds     []RoundEstimate `json:"rounds"`
}

// Round returns the estimate for round n (1-based).
func (r EstimateRow) Round(n int) (RoundEstimate, bool) {
	if n < 1 || n > len(r.Rounds) {
		return RoundEstimate{}, false
	}
	return r.Rounds[n-1], true
}

// RoundClamp records a round count the regulations forced down. The caller
// owns the settings and should store Allowed.
type RoundClamp struct {
	Category  string `json:"category"`
	Requested int    `json:"requested"`
	Allowed   int    `json:"allowed"`
	Message   string `json:"message"`
}

// Estimates is the output of the advancement projector.
type Estimates struct {
	TotalCompetitors int           `json:"total_competitors"`
	Stations         int           `json:"stations"`
	Rows             []EstimateRow `json:"rows"`
	Clamps           []RoundClamp  `json:"clamps,omitempty"`
	// Notices lists every value the projector adjusted, one line each.
	Notices []string `json:"notices,omitempty"`
}

// MaxRounds returns the largest round count among the rows.
func (e *Estimates) MaxRounds() int {
	n := 0
	for _, row := range e.Rows {
		n = max(n, len(row.Rounds))
	}
	return n
}

// Project computes per-round competitor counts, groups and durations for
// every selected category. Categories missing from settings use
// models.DefaultSettings. Neither cfg nor settings is modified.
func Project(cat *catalog.Catalog, cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (*Estimates, error) {
	if cfg.TotalCompetitors < 1 || cfg.TotalCompetitors > models.MaxCompetitors {
		return nil, errors.InvalidInputf("total competitors must be between 1 and %d, got %d", models.MaxCompetitors, cfg.TotalCompetitors)
	}

	est := &Estimates{
		TotalCompetitors: cfg.TotalCompetitors,
		Stations:         StationCount(cfg.TotalCompetitors),
		Rows:             make([]EstimateRow, 0, len(cfg.Categories)),
	}

	for _, name := range cfg.Categories {
		category, ok := cat.Lookup(name)
		if !ok {
			return nil, errors.InvalidInputf("unknown category %q", name)
		}
		s, ok := settings[name]
		if !ok {
			s = models.DefaultSettings()
		}
		if s.Rounds > models.MaxRoundsPerCategory {
			return nil, errors.InvalidInputf("%s: at most %d rounds are supported, got %d", name, models.MaxRoundsPerCategory, s.Rounds)
		}

		row, err := est.projectCategory(category, s)
		if err != nil {
			return nil, err
		}
		est.Rows = append(est.Rows, row)
	}

	return est, nil
}

func (e *Estimates) projectCategory(category catalog.Category, s models.CategorySettings) (EstimateRow, error) {
	name := category.Name
	row := EstimateRow{Category: name, Percentage: category.RegistrationPercentage}

	if !CutoffIsValid(s.Cutoff) {
		e.notice("%s: cutoff %q is not MM:SS, using the default %ds solve time", name, s.Cutoff, DefaultSolveSeconds)
	}

	current := InitialCompetitors(category, e.TotalCompetitors)

	requested := max(s.Rounds, 1)
	rounds, msg := ValidateRounds(current, requested)
	if rounds != requested {
		e.Clamps = append(e.Clamps, RoundClamp{Category: name, Requested: requested, Allowed: rounds, Message: msg})
		e.notice("%s: %s", name, msg)
	}

	first, err := e.estimateRound(category, 1, current, s.Cutoff, false)
	if err != nil {
		return row, err
	}
	row.Rounds = append(row.Rounds, first)

	for r := 2; r <= rounds; r++ {
		isFinal := r == rounds
		if isFinal {
			current = e.finalSize(name, r, current, s.FinalSize)
		} else {
			pct := e.advancePercent(name, r-1, s)
			current = ceilDiv(current*pct, 100*5) * 5
		}

		est, err := e.estimateRound(category, r, current, s.Cutoff, isFinal)
		if err != nil {
			return row, err
		}
		row.Rounds = append(row.Rounds, est)
	}

	return row, nil
}

func (e *Estimates) estimateRound(category catalog.Category, round, competitors int, cutoff string, final bool) (RoundEstimate, error) {
	groups, size := GroupsAndSize(category, competitors, e.Stations)
	minutes, err := RoundTime(category, competitors, e.Stations, cutoff, round == 1)
	if err != nil {
		return RoundEstimate{}, err
	}
	return RoundEstimate{
		Category:    category.Name,
		Round:       round,
		Competitors: competitors,
		Groups:      groups,
		GroupSize:   size,
		Minutes:     minutes,
		Final:       final,
	}, nil
}

// finalSize applies the three-quarters cap to a configured final size.
func (e *Estimates) finalSize(name string, round, previous, configured int) int {
	if configured <= 0 {
		configured = models.DefaultFinalSize
	}
	limit := previous * finalCapNumerator / finalCapDenominator
	if configured > limit {
		e.notice("%s: final size %d exceeds 75%% of round %d (%d competitors), using %d", name, configured, round-1, previous, limit)
		return limit
	}
	return configured
}

// advancePercent returns the clamped advancement from round to round+1.
func (e *Estimates) advancePercent(name string, round int, s models.CategorySettings) int {
	pct := s.AdvanceFrom(round, fallbackAdvancePercent)
	switch {
	case pct > models.MaxAdvancePercent:
		e.notice("%s: advancement of %d%% from round %d capped at %d%%", name, pct, round, models.MaxAdvancePercent)
		return models.MaxAdvancePercent
	case pct < models.MinAdvancePercent:
		e.notice("%s: advancement of %d%% from round %d raised to %d%%", name, pct, round, models.MinAdvancePercent)
		return models.MinAdvancePercent
	}
	return pct
}

func (e *Estimates) notice(format string, args ...any) {
	e.Notices = append(e.Notices, fmt.Sprintf(format, args...))
}
