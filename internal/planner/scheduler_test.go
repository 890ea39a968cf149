package planner

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
)

func row(category string, minutes ...int) EstimateRow {
	r := EstimateRow{Category: category}
	for i, m := range minutes {
		r.Rounds = append(r.Rounds, RoundEstimate{Category: category, Round: i + 1, Minutes: m})
	}
	return r
}

func day(start, end string) models.DayWindow {
	return models.DayWindow{Start: start, End: end}
}

func assertBlocks(t *testing.T, got []Block, want []Block) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSchedule_SingleFixedRound(t *testing.T) {
	tt, err := Schedule([]EstimateRow{row("FMC", 75)}, []models.DayWindow{day("09:00", "18:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertBlocks(t, tt.Blocks, []Block{
		{Day: 1, Start: 540, End: 585, Label: LabelRegistration},
		{Day: 1, Start: 585, End: 660, Label: "FMC", Round: 1},
		{Day: 1, Start: 660, End: 690, Label: LabelPrizeGiving},
	})
	if len(tt.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", tt.Warnings)
	}
	if len(tt.Unscheduled) != 0 {
		t.Errorf("expected nothing unscheduled, got %v", tt.Unscheduled)
	}
}

func TestSchedule_LunchAtMidday(t *testing.T) {
	rows := []EstimateRow{row("A", 120), row("B", 120), row("C", 120)}

	tt, err := Schedule(rows, []models.DayWindow{day("09:00", "18:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertBlocks(t, tt.Blocks, []Block{
		{Day: 1, Start: 540, End: 585, Label: LabelRegistration},
		{Day: 1, Start: 585, End: 705, Label: "A", Round: 1},
		{Day: 1, Start: 705, End: 825, Label: "B", Round: 1},
		{Day: 1, Start: 825, End: 885, Label: LabelLunch},
		{Day: 1, Start: 885, End: 1005, Label: "C", Round: 1},
		{Day: 1, Start: 1005, End: 1035, Label: LabelPrizeGiving},
	})
}

func TestSchedule_CarriesRoundToNextDay(t *testing.T) {
	rows := []EstimateRow{row("A", 60), row("B", 90), row("C", 30)}
	days := []models.DayWindow{day("09:00", "12:00"), day("09:00", "12:00")}

	tt, err := Schedule(rows, days, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertBlocks(t, tt.Blocks, []Block{
		{Day: 1, Start: 540, End: 585, Label: LabelRegistration},
		{Day: 1, Start: 585, End: 645, Label: "A", Round: 1},
		{Day: 1, Start: 645, End: 705, Label: LabelLunch},
		{Day: 2, Start: 540, End: 630, Label: "B", Round: 1},
		{Day: 2, Start: 630, End: 690, Label: LabelLunch},
		{Day: 2, Start: 690, End: 720, Label: "C", Round: 1},
	})
	if len(tt.Unscheduled) != 0 {
		t.Errorf("expected nothing unscheduled, got %v", tt.Unscheduled)
	}
	if len(tt.Day(2)) != 3 {
		t.Errorf("expected 3 blocks on day 2, got %d", len(tt.Day(2)))
	}
}

func TestSchedule_Unscheduled(t *testing.T) {
	rows := []EstimateRow{row("A", 30), row("B", 30)}

	tt, err := Schedule(rows, []models.DayWindow{day("09:00", "10:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tt.Unscheduled) != 2 {
		t.Fatalf("expected 2 unscheduled rounds, got %d", len(tt.Unscheduled))
	}
	if tt.Unscheduled[0].Category != "A" || tt.Unscheduled[1].Category != "B" {
		t.Errorf("unexpected unscheduled order %+v", tt.Unscheduled)
	}
	for _, b := range tt.Blocks {
		if b.Label == LabelPrizeGiving {
			t.Error("prize giving placed although rounds remain")
		}
	}
	if len(tt.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", tt.Warnings)
	}
	lines := strings.Split(tt.Warnings[0], "\n")
	if lines[0] != "Not all events could be scheduled. Consider:" || len(lines) != 5 {
		t.Errorf("unexpected warning %q", tt.Warnings[0])
	}
}

func TestSchedule_LongDayWarning(t *testing.T) {
	rows := []EstimateRow{row("A", 120), row("B", 120), row("C", 120), row("D", 120), row("E", 120)}

	tt, err := Schedule(rows, []models.DayWindow{day("08:00", "20:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Day 1 is longer than recommended (9 hours). Consider removing some events or rounds."
	if !reflect.DeepEqual(tt.Warnings, []string{want}) {
		t.Errorf("unexpected warnings %v", tt.Warnings)
	}
	last := tt.Blocks[len(tt.Blocks)-1]
	if last.Label != "E" || last.End != 1185 {
		t.Errorf("unexpected last block %+v", last)
	}
}

func TestSchedule_NoPrizeGivingWithoutRoom(t *testing.T) {
	tt, err := Schedule([]EstimateRow{row("A", 120)}, []models.DayWindow{day("09:00", "11:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 09:45 + 120 overruns, lunch never triggers before the day closes.
	if len(tt.Unscheduled) != 1 {
		t.Fatalf("expected the round unscheduled, got %+v", tt.Blocks)
	}

	tt, err = Schedule([]EstimateRow{row("A", 60)}, []models.DayWindow{day("09:00", "11:00")}, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range tt.Blocks {
		if b.Label == LabelPrizeGiving {
			t.Errorf("prize giving placed without room: %+v", tt.Blocks)
		}
	}
}

func TestSchedule_RegistrationOnlyOnFirstDay(t *testing.T) {
	rows := []EstimateRow{row("A", 240), row("B", 240), row("C", 240)}
	days := []models.DayWindow{day("09:00", "18:00"), day("09:00", "18:00")}

	tt, err := Schedule(rows, days, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, b := range tt.Blocks {
		if b.Label == LabelRegistration {
			count++
			if b.Day != 1 {
				t.Errorf("registration on day %d", b.Day)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected 1 registration block, got %d", count)
	}
}

func TestSchedule_InvalidDays(t *testing.T) {
	rows := []EstimateRow{row("A", 60)}

	tests := []struct {
		name string
		days []models.DayWindow
	}{
		{"no days", nil},
		{"bad start", []models.DayWindow{day("25:00", "18:00")}},
		{"bad end", []models.DayWindow{day("09:00", "6pm")}},
		{"end before start", []models.DayWindow{day("09:00", "18:00"), day("12:00", "11:00")}},
		{"empty window", []models.DayWindow{day("09:00", "09:00")}},
		{"too many days", []models.DayWindow{
			day("09:00", "18:00"), day("09:00", "18:00"), day("09:00", "18:00"), day("09:00", "18:00"),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Schedule(rows, tc.days, "3x3")
			if errors.KindOf(err) != errors.ErrInvalidInput {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	rows := []EstimateRow{row("3x3", 90, 45, 15), row("2x2", 60, 30), row("FMC", 75)}
	days := models.DefaultDays()

	first, err := Schedule(rows, days, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Schedule(rows, days, "3x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical timetables for identical input")
	}
}

func instanceKeys(instances []Instance) []string {
	keys := make([]string, len(instances))
	for i, in := range instances {
		keys[i] = fmt.Sprintf("%s/%d", in.Category, in.Round)
	}
	return keys
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name      string
		rows      []EstimateRow
		mainEvent string
		expected  []string
	}{
		{
			name:      "main event final deferred",
			rows:      []EstimateRow{row("3x3", 90, 45, 15), row("2x2", 60, 30)},
			mainEvent: "3x3",
			expected:  []string{"3x3/1", "2x2/1", "3x3/2", "2x2/2", "3x3/3"},
		},
		{
			name:      "other third rounds stay in place",
			rows:      []EstimateRow{row("3x3", 90, 45, 15), row("2x2", 60, 30), row("OH", 60, 30, 15)},
			mainEvent: "3x3",
			expected:  []string{"3x3/1", "2x2/1", "OH/1", "3x3/2", "2x2/2", "OH/2", "OH/3", "3x3/3"},
		},
		{
			name:      "two-round main event not deferred",
			rows:      []EstimateRow{row("3x3", 90, 45, 15), row("2x2", 60, 30), row("OH", 60, 30, 15)},
			mainEvent: "2x2",
			expected:  []string{"3x3/1", "2x2/1", "OH/1", "3x3/2", "2x2/2", "OH/2", "3x3/3", "OH/3"},
		},
		{
			name:      "fourth round of the main event",
			rows:      []EstimateRow{row("3x3", 90, 60, 45, 15), row("2x2", 60, 30, 15)},
			mainEvent: "3x3",
			expected:  []string{"3x3/1", "2x2/1", "3x3/2", "2x2/2", "3x3/3", "2x2/3", "3x3/4"},
		},
		{
			name:      "main event not selected",
			rows:      []EstimateRow{row("2x2", 60, 30, 15)},
			mainEvent: "3x3",
			expected:  []string{"2x2/1", "2x2/2", "2x2/3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := instanceKeys(Flatten(tt.rows, tt.mainEvent))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Flatten = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBlock_RoundLabel(t *testing.T) {
	if got := (Block{Label: LabelLunch}).RoundLabel(); got != "-" {
		t.Errorf("expected -, got %q", got)
	}
	if got := (Block{Label: "3x3", Round: 2}).RoundLabel(); got != "Round 2" {
		t.Errorf("expected Round 2, got %q", got)
	}
}
