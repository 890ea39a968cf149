package planner

import (
	"fmt"
	"strconv"
)

// Table is a rendered tabular output: a header row and string cells.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// EstimateTable renders estimates with columns Category, Percentage and a
// Competitors/Groups/Time triple per round. Rounds a category does not run
// are left empty.
func EstimateTable(est *Estimates) Table {
	rounds := est.MaxRounds()
	t := Table{Headers: []string{"Category", "Percentage"}}
	for r := 1; r <= rounds; r++ {
		t.Headers = append(t.Headers,
			fmt.Sprintf("R%d Competitors", r),
			fmt.Sprintf("R%d Groups", r),
			fmt.Sprintf("R%d Time", r),
		)
	}

	for _, row := range est.Rows {
		cells := []string{row.Category, formatPercent(row.Percentage)}
		for r := 1; r <= rounds; r++ {
			re, ok := row.Round(r)
			if !ok {
				cells = append(cells, "", "", "")
				continue
			}
			cells = append(cells, strconv.Itoa(re.Competitors), strconv.Itoa(re.Groups), re.Duration())
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// ScheduleTable renders a timetable with columns Day, Start, End, Event,
// Round and Duration.
func ScheduleTable(tt *Timetable) Table {
	t := Table{Headers: []string{"Day", "Start", "End", "Event", "Round", "Duration"}}
	for _, b := range tt.Blocks {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(b.Day),
			FormatHHMM(b.Start),
			FormatHHMM(b.End),
			b.Label,
			b.RoundLabel(),
			FormatHHMM(b.Minutes()),
		})
	}
	return t
}

// formatPercent keeps at least one decimal: 97.49 -> "97.49%", 13 -> "13.0%".
func formatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if p == float64(int64(p)) {
		s += ".0"
	}
	return s + "%"
}
