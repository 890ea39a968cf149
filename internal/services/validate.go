package services

import (
	"strings"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/planner"
)

func validateCompetitors(total int) error {
	switch {
	case total < 1:
		return ErrTooFewCompetitors
	case total > models.MaxCompetitors:
		return ErrTooManyCompetitors
	}
	return nil
}

func validateDays(days []models.DayWindow) error {
	if len(days) < 1 || len(days) > models.MaxDays {
		return errors.Validationf("a competition runs on 1 to %d days, got %d", models.MaxDays, len(days))
	}
	for i, d := range days {
		if err := planner.ValidateWindow(i+1, d); err != nil {
			return errors.Wrap(err, errors.ErrValidation, "invalid competition day")
		}
	}
	return nil
}

func normalizeSettings(in models.CategorySettings) (models.CategorySettings, error) {
	out := in.Clone()

	if out.Rounds < 1 || out.Rounds > models.MaxRoundsPerCategory {
		return out, errors.Validationf("rounds must be between 1 and %d, got %d", models.MaxRoundsPerCategory, out.Rounds)
	}

	out.Cutoff = strings.TrimSpace(out.Cutoff)
	if out.Cutoff == "" {
		out.Cutoff = models.CutoffNone
	}
	if !planner.CutoffIsValid(out.Cutoff) {
		return out, errors.Validationf("cutoff %q must be \"none\" or MM:SS", in.Cutoff)
	}

	if out.FinalSize < models.MinFinalSize {
		return out, errors.Validationf("final size must be at least %d, got %d", models.MinFinalSize, out.FinalSize)
	}

	if len(out.Advance) > models.MaxRoundsPerCategory-1 {
		out.Advance = out.Advance[:models.MaxRoundsPerCategory-1]
	}
	for i, pct := range out.Advance {
		switch {
		case pct == 0:
		case pct < models.MinAdvancePercent:
			out.Advance[i] = models.MinAdvancePercent
		case pct > models.MaxAdvancePercent:
			out.Advance[i] = models.MaxAdvancePercent
		}
	}
	return out, nil
}

// validateConfig checks an ad-hoc planning request against the same limits
// stored competitions are held to, and returns the normalized settings.
func validateConfig(cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (map[string]models.CategorySettings, error) {
	if err := validateCompetitors(cfg.TotalCompetitors); err != nil {
		return nil, err
	}
	if err := validateDays(cfg.Days); err != nil {
		return nil, err
	}

	out := make(map[string]models.CategorySettings, len(settings))
	for name, s := range settings {
		normalized, err := normalizeSettings(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrValidation, "settings for "+name)
		}
		out[name] = normalized
	}
	return out, nil
}
