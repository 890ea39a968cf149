package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

const settingBaseURL = "base_url"

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, settingBaseURL)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil // No default - setting not yet configured
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the application base URL. It must be an absolute http or
// https URL.
func (s *SettingsService) SetBaseURL(ctx context.Context, raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Validationf("base URL %q must be an absolute http(s) URL", raw)
	}
	if err := s.repo.SetSetting(ctx, settingBaseURL, raw); err != nil {
		return err
	}
	s.log.Info("Base URL updated", "base_url", raw)
	return nil
}

// AllSettings returns the application settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	baseURL, err := s.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		settingBaseURL: baseURL,
	}, nil
}

// Settings represents application settings for update operations
type Settings struct {
	BaseURL string
}

// UpdateSettings updates multiple settings at once. Empty fields are left
// unchanged.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) error {
	if settings.BaseURL != "" {
		if err := s.SetBaseURL(ctx, settings.BaseURL); err != nil {
			return err
		}
	}
	return nil
}
