package planner

import (
	"fmt"
	"strings"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
)

// Fixed blocks and limits of the day scheduler, in minutes.
const (
	RegistrationMinutes = 45
	LunchMinutes        = 60
	PrizeGivingMinutes  = 30
	// RecommendedDayMinutes is the longest day that passes without a warning.
	RecommendedDayMinutes = 9 * 60
)

// Labels of the non-competition blocks.
const (
	LabelRegistration = "Registration"
	LabelLunch        = "Lunch Break"
	LabelPrizeGiving  = "Prize Giving"
)

// Instance is one round of one category waiting to be placed.
type Instance struct {
	Category    string `json:"category"`
	Round       int    `json:"round"`
	Minutes     int    `json:"minutes"`
	Competitors int    `json:"competitors"`
}

// Block is one placed slot of the timetable. Start and End are minutes from
// midnight of day Day (1-based). Round is 0 for registration, lunch and
// prize giving.
type Block struct {
	Day   int    `json:"day"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Round int    `json:"round"`
}

// Minutes returns the block duration.
func (b Block) Minutes() int {
	return b.End - b.Start
}

// RoundLabel returns "Round N", or "-" for non-competition blocks.
func (b Block) RoundLabel() string {
	if b.Round == 0 {
		return "-"
	}
	return fmt.Sprintf("Round %d", b.Round)
}

// Timetable is the output of the day scheduler.
type Timetable struct {
	Blocks []Block `json:"blocks"`
	// Unscheduled are the instances left over after the last day closed.
	Unscheduled []Instance `json:"unscheduled,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
}

// Day returns the blocks placed on day (1-based).
func (t *Timetable) Day(day int) []Block {
	var out []Block
	for _, b := range t.Blocks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	return out
}

// Flatten orders every round of every row for placement: all first rounds
// in row order, then all second rounds, and so on. The main event's final is
// pulled out and appended last when the main event runs three or more
// rounds. With four rounds that is round 4; round 3 keeps its place among
// the third rounds and every round is scheduled.
func Flatten(rows []EstimateRow, mainEvent string) []Instance {
	maxRounds := 0
	for _, row := range rows {
		maxRounds = max(maxRounds, len(row.Rounds))
	}

	var out []Instance
	var finale *Instance
	for round := 1; round <= maxRounds; round++ {
		for _, row := range rows {
			r, ok := row.Round(round)
			if !ok {
				continue
			}
			inst := Instance{Category: row.Category, Round: round, Minutes: r.Minutes, Competitors: r.Competitors}
			if row.Category == mainEvent && round >= 3 && round == len(row.Rounds) {
				finale = &inst
				continue
			}
			out = append(out, inst)
		}
	}
	if finale != nil {
		out = append(out, *finale)
	}
	return out
}

// Schedule places the projected rounds over the given days, in order and
// without splitting or reordering. A round that does not fit in what is left
// of a day closes that day; the next day resumes with the same round.
func Schedule(rows []EstimateRow, days []models.DayWindow, mainEvent string) (*Timetable, error) {
	if len(days) == 0 {
		return nil, errors.InvalidInput("at least one competition day is required")
	}
	if len(days) > models.MaxDays {
		return nil, errors.InvalidInputf("at most %d competition days are supported, got %d", models.MaxDays, len(days))
	}

	type window struct{ start, end int }
	windows := make([]window, len(days))
	for i, d := range days {
		start, end, err := parseWindow(i+1, d)
		if err != nil {
			return nil, err
		}
		windows[i] = window{start, end}
	}

	instances := Flatten(rows, mainEvent)
	tt := &Timetable{Blocks: make([]Block, 0, len(instances)+2*len(days)+1)}
	cursor := 0

	for i, w := range windows {
		day := i + 1
		now := w.start

		if day == 1 {
			tt.place(day, now, RegistrationMinutes, LabelRegistration, 0)
			now += RegistrationMinutes
		}

		lunchAt := w.start + (w.end-w.start)/2
		lunchDone := false

		for cursor < len(instances) && now < w.end {
			if !lunchDone && now >= lunchAt {
				tt.place(day, now, LunchMinutes, LabelLunch, 0)
				now += LunchMinutes
				lunchDone = true
				continue
			}

			inst := instances[cursor]
			if now+inst.Minutes > w.end {
				break
			}
			tt.place(day, now, inst.Minutes, inst.Category, inst.Round)
			now += inst.Minutes
			cursor++
		}

		if day == len(windows) && cursor >= len(instances) && now+PrizeGivingMinutes <= w.end {
			tt.place(day, now, PrizeGivingMinutes, LabelPrizeGiving, 0)
		}

		if now-w.start > RecommendedDayMinutes {
			tt.Warnings = append(tt.Warnings, fmt.Sprintf("Day %d is longer than recommended (9 hours). Consider removing some events or rounds.", day))
		}
	}

	if cursor < len(instances) {
		tt.Unscheduled = append(tt.Unscheduled, instances[cursor:]...)
		tt.Warnings = append(tt.Warnings, strings.Join([]string{
			"Not all events could be scheduled. Consider:",
			"- Removing some events",
			"- Adding more days",
			"- Reducing number of rounds",
			"- Adjusting cutoffs to reduce round durations",
		}, "\n"))
	}

	return tt, nil
}

func (t *Timetable) place(day, start, minutes int, label string, round int) {
	t.Blocks = append(t.Blocks, Block{Day: day, Start: start, End: start + minutes, Label: label, Round: round})
}
