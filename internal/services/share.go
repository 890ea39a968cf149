package services

import (
	"context"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/abrezinsky/cubeplan/internal/logger"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// QRCodeSize is the edge length in pixels of generated share codes.
const QRCodeSize = 256

// ShareService builds the public links of competition schedules
type ShareService struct {
	log      logger.Logger
	repo     repository.CompetitionRepository
	settings SettingsServicer
}

// NewShareService creates a new ShareService
func NewShareService(log logger.Logger, repo repository.CompetitionRepository, settings SettingsServicer) *ShareService {
	return &ShareService{log: log, repo: repo, settings: settings}
}

// ScheduleURL returns the public timetable URL of a competition. Without a
// configured base URL the path alone is returned.
func (s *ShareService) ScheduleURL(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetCompetition(ctx, id); err != nil {
		return "", competitionError(err, id)
	}
	base, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(base, "/") + "/competitions/" + id + "/schedule", nil
}

// QRCode renders the schedule URL of a competition as a PNG
func (s *ShareService) QRCode(ctx context.Context, id string) ([]byte, error) {
	url, err := s.ScheduleURL(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(url, qrcode.Medium, QRCodeSize)
	if err != nil {
		s.log.Error("QR code generation failed", "competition", id, "error", err)
		return nil, err
	}
	return png, nil
}
