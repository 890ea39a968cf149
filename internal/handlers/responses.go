package handlers

import "github.com/abrezinsky/cubeplan/internal/catalog"

// LoginResponse carries the session token for bearer authentication
type LoginResponse struct {
	Token string `json:"token"`
}

// CatalogResponse lists every known category
type CatalogResponse struct {
	Categories []catalog.Category `json:"categories"`
}

// StationsResponse is the solving-station estimate for a competitor count
type StationsResponse struct {
	Competitors int `json:"competitors"`
	Stations    int `json:"stations"`
}

// ShareResponse is the public timetable link of a competition
type ShareResponse struct {
	URL string `json:"url"`
	QR  string `json:"qr"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL string `json:"base_url"`
}

// HealthResponse reports server health
type HealthResponse struct {
	Status string `json:"status"`
}
