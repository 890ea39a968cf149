package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
)

// minutesPerDay bounds wall-clock values; there is no date component.
const minutesPerDay = 24 * 60

// ParseClock converts an HH:MM wall-clock time to minutes from midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := splitPair(s)
	if !ok || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.InvalidInputf("invalid time %q, expected HH:MM", s)
	}
	return h*60 + m, nil
}

// FormatHHMM renders minutes as zero-padded HH:MM. It is used both for
// times of day and for durations.
func FormatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseCutoff returns the cutoff in seconds. ok is false for "none", the
// empty string, and anything that is not a positive MM:SS duration.
func ParseCutoff(s string) (seconds int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, models.CutoffNone) {
		return 0, false
	}
	m, sec, ok := splitPair(s)
	if !ok || m < 0 || sec < 0 || sec > 59 {
		return 0, false
	}
	total := m*60 + sec
	if total == 0 {
		return 0, false
	}
	return total, true
}

// CutoffIsValid reports whether s is "none", empty, or a parseable cutoff.
func CutoffIsValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, models.CutoffNone) {
		return true
	}
	_, ok := ParseCutoff(s)
	return ok
}

// parseWindow converts a day window to minutes and checks start < end.
func parseWindow(day int, w models.DayWindow) (start, end int, err error) {
	if start, err = ParseClock(w.Start); err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrInvalidInput, fmt.Sprintf("day %d start", day))
	}
	if end, err = ParseClock(w.End); err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrInvalidInput, fmt.Sprintf("day %d end", day))
	}
	if end <= start {
		return 0, 0, errors.InvalidInputf("day %d ends at %s, not after its start %s", day, w.End, w.Start)
	}
	return start, end, nil
}

// ValidateWindow checks a day window without scheduling anything.
func ValidateWindow(day int, w models.DayWindow) error {
	_, _, err := parseWindow(day, w)
	return err
}

func splitPair(s string) (int, int, bool) {
	left, right, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || left == "" || len(right) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
