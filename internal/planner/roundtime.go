package planner

import (
	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
)

const (
	// DefaultSolveSeconds is the expected solve time without a cutoff.
	DefaultSolveSeconds = 35
	// idleStations are kept out of the throughput estimate for judging and
	// setup, so the estimator needs more stations than this.
	idleStations = 3

	firstRoundCutoffTenths = 7 // 70% of the cutoff
	laterRoundCutoffTenths = 6 // 60% of the cutoff
)

// RoundTime estimates a round's duration in minutes, rounded up to the next
// quarter hour. Fixed-time categories always take catalog.FixedRoundMinutes.
// An unparsable cutoff falls back to DefaultSolveSeconds.
//
// Station counts of idleStations or fewer make the estimate meaningless and
// are rejected as a precondition error; StationCount never produces them.
func RoundTime(cat catalog.Category, competitors, stations int, cutoff string, firstRound bool) (int, error) {
	if cat.FixedTime {
		return catalog.FixedRoundMinutes, nil
	}
	if stations <= idleStations {
		return 0, errors.Preconditionf("round time for %s needs more than %d stations, got %d", cat.Name, idleStations, stations)
	}

	// Work in tenths of a second so 70% and 60% of a cutoff stay exact.
	solveTenths := DefaultSolveSeconds * 10
	if secs, ok := ParseCutoff(cutoff); ok {
		factor := laterRoundCutoffTenths
		if firstRound {
			factor = firstRoundCutoffTenths
		}
		solveTenths = secs * factor
	}

	totalTenths := (solveTenths + cat.ScrambleSeconds*10) * cat.Attempts * competitors
	quarterHourTenths := 15 * 60 * 10 * (stations - idleStations)
	return ceilDiv(totalTenths, quarterHourTenths) * 15, nil
}
