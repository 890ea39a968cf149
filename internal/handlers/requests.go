package handlers

import (
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/services"
)

// LoginRequest represents an organiser login
type LoginRequest struct {
	Password string `json:"password"`
}

// CompetitionCreateRequest represents a request to create a competition
type CompetitionCreateRequest struct {
	Name string `json:"name"`
}

// CompetitionUpdateRequest represents a request to update a competition.
// Omitted fields are left unchanged.
type CompetitionUpdateRequest struct {
	Name             *string            `json:"name"`
	TotalCompetitors *int               `json:"total_competitors"`
	MainEvent        *string            `json:"main_event"`
	Days             []models.DayWindow `json:"days"`
}

func (r CompetitionUpdateRequest) toUpdate() services.CompetitionUpdate {
	return services.CompetitionUpdate{
		Name:             r.Name,
		TotalCompetitors: r.TotalCompetitors,
		MainEvent:        r.MainEvent,
		Days:             r.Days,
	}
}

// SelectCategoriesRequest lists the selected categories in display order
type SelectCategoriesRequest struct {
	Categories []string `json:"categories"`
}

// CategorySettingsRequest represents the round settings of one category
type CategorySettingsRequest struct {
	Rounds    int    `json:"rounds"`
	Cutoff    string `json:"cutoff"`
	Advance   []int  `json:"advance"`
	FinalSize int    `json:"final_size"`
}

func (r CategorySettingsRequest) toSettings() models.CategorySettings {
	return models.CategorySettings{
		Rounds:    r.Rounds,
		Cutoff:    r.Cutoff,
		Advance:   r.Advance,
		FinalSize: r.FinalSize,
	}
}

// PlanRequest is a stateless planning request. Missing days default to two
// 09:00-18:00 days and a missing main event follows the usual fallback.
type PlanRequest struct {
	TotalCompetitors int                                `json:"total_competitors"`
	Categories       []string                           `json:"categories"`
	MainEvent        string                             `json:"main_event"`
	Days             []models.DayWindow                 `json:"days"`
	Settings         map[string]models.CategorySettings `json:"settings"`
}

func (r PlanRequest) toConfig() models.CompetitionConfig {
	days := r.Days
	if len(days) == 0 {
		days = models.DefaultDays()
	}
	return models.CompetitionConfig{
		TotalCompetitors: r.TotalCompetitors,
		Categories:       r.Categories,
		MainEvent:        models.ChooseMainEvent(r.MainEvent, r.Categories),
		Days:             days,
	}
}

// SettingsRequest represents an application settings update
type SettingsRequest struct {
	BaseURL string `json:"base_url"`
}
