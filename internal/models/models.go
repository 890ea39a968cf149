package models

import "time"

// CutoffNone is the cutoff value meaning "no cutoff".
const CutoffNone = "none"

// Defaults for newly selected categories.
const (
	DefaultRounds         = 1
	DefaultAdvancePercent = 50
	DefaultFinalSize      = 8
	DefaultMainEvent      = "3x3"
	DefaultDayStart       = "09:00"
	DefaultDayEnd         = "18:00"
	DefaultDayCount       = 2
	MinAdvancePercent     = 25
	MaxAdvancePercent     = 75
	MaxRoundsPerCategory  = 4
	MinFinalSize          = 2
	MaxDays               = 3
	MaxCompetitors        = 10000
)

// CategorySettings holds the organiser's round configuration for one
// selected category.
type CategorySettings struct {
	Rounds int    `json:"rounds"`
	Cutoff string `json:"cutoff"`
	// Advance[i] is the percentage of competitors advancing from round i+1
	// to round i+2. Only non-final rounds read it.
	Advance   []int `json:"advance"`
	FinalSize int   `json:"final_size"`
}

// DefaultSettings returns the settings a category gets when it is selected.
func DefaultSettings() CategorySettings {
	return CategorySettings{
		Rounds:    DefaultRounds,
		Cutoff:    CutoffNone,
		Advance:   []int{DefaultAdvancePercent, DefaultAdvancePercent, DefaultAdvancePercent},
		FinalSize: DefaultFinalSize,
	}
}

// AdvanceFrom returns the configured advancement percentage from round to
// round+1, or fallback when none is configured.
func (s CategorySettings) AdvanceFrom(round, fallback int) int {
	if round < 1 || round > len(s.Advance) || s.Advance[round-1] == 0 {
		return fallback
	}
	return s.Advance[round-1]
}

// Clone returns a deep copy.
func (s CategorySettings) Clone() CategorySettings {
	out := s
	if s.Advance != nil {
		out.Advance = append([]int(nil), s.Advance...)
	}
	return out
}

// DayWindow is the wall-clock opening time of one competition day, HH:MM.
type DayWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// DefaultDays returns the default two 09:00-18:00 days.
func DefaultDays() []DayWindow {
	days := make([]DayWindow, DefaultDayCount)
	for i := range days {
		days[i] = DayWindow{Start: DefaultDayStart, End: DefaultDayEnd}
	}
	return days
}

// CompetitionConfig is the input of an estimation and scheduling pass.
type CompetitionConfig struct {
	TotalCompetitors int `json:"total_competitors"`
	// Categories are the selected categories in display order.
	Categories []string    `json:"categories"`
	MainEvent  string      `json:"main_event"`
	Days       []DayWindow `json:"days"`
}

// HasCategory reports whether name is selected.
func (c CompetitionConfig) HasCategory(name string) bool {
	for _, n := range c.Categories {
		if n == name {
			return true
		}
	}
	return false
}

// ChooseMainEvent returns current when it is among categories, otherwise
// DefaultMainEvent when selected, otherwise the first category. It returns
// "" for an empty selection.
func ChooseMainEvent(current string, categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	cfg := CompetitionConfig{Categories: categories}
	if current != "" && cfg.HasCategory(current) {
		return current
	}
	if cfg.HasCategory(DefaultMainEvent) {
		return DefaultMainEvent
	}
	return categories[0]
}

// Competition is a stored competition with its configuration and settings.
type Competition struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name"`
	Config    CompetitionConfig           `json:"config"`
	Settings  map[string]CategorySettings `json:"settings"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// CompetitionSummary is the list view of a competition.
type CompetitionSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TotalCompetitors int       `json:"total_competitors"`
	MainEvent        string    `json:"main_event"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
