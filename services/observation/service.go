// Package observation handles crowd-sourced field observations and
// pest/disease reports, including officer verification and hotspot
// detection.
package observation

import (
	"context"
	"errors"
	"time"

	obsRepo "croppulse/database/repository/observation"
	userRepo "croppulse/database/repository/user"
	"croppulse/models"
	"croppulse/services/notification"
	"croppulse/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	// ErrObservationNotFound signals that no observation or report matches.
	ErrObservationNotFound = errors.New("observation not found")
	// ErrAlreadyVerified signals a second verification attempt.
	ErrAlreadyVerified = errors.New("observation already verified")
)

// ObservationService manages field observations and pest/disease reports.
type ObservationService interface {
	CreateObservation(ctx context.Context, o *models.FarmObservation) (*models.FarmObservation, error)
	GetObservation(ctx context.Context, id string) (*models.FarmObservation, error)
	ListObservations(ctx context.Context, f obsRepo.ObservationFilter, limit, offset int) ([]*models.FarmObservation, int, error)
	VerifyObservation(ctx context.Context, id, officerID, status, notes string) (*models.FarmObservation, error)

	CreateReport(ctx context.Context, rep *models.PestDiseaseReport) (*models.PestDiseaseReport, error)
	GetReport(ctx context.Context, id string) (*models.PestDiseaseReport, error)
	ListReports(ctx context.Context, f obsRepo.ReportFilter, limit, offset int) ([]*models.PestDiseaseReport, int, error)
	ResolveReport(ctx context.Context, id string) error
	Hotspots(ctx context.Context, days, minReports int) ([]*models.PestHotspot, error)
}

// DefaultObservationService is the production implementation.
type DefaultObservationService struct {
	Repo       obsRepo.ObservationRepository
	Accounts   userRepo.AccountRepository
	Dispatcher notification.Dispatcher
	Clock      clockwork.Clock
}

func (s *DefaultObservationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// QualityScore rates an observation's completeness from 0 to 100. Richer
// submissions rank higher for officers triaging the verification queue.
func QualityScore(o *models.FarmObservation) int {
	score := 0
	if len(o.Description) >= 50 {
		score += 20
	}
	images := o.ImageCount
	if images > 3 {
		images = 3
	}
	score += images * 10
	if o.Latitude != 0 || o.Longitude != 0 {
		score += 15
	}
	if o.Temperature != nil || o.Rainfall != nil {
		score += 15
	}
	if o.LocationDescription != "" {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

func (s *DefaultObservationService) CreateObservation(ctx context.Context, o *models.FarmObservation) (*models.FarmObservation, error) {
	o.Status = models.ObservationStatusPending
	o.QualityScore = QualityScore(o)
	if err := s.Repo.CreateObservation(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DefaultObservationService) GetObservation(ctx context.Context, id string) (*models.FarmObservation, error) {
	o, err := s.Repo.GetObservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrObservationNotFound
	}
	return o, nil
}

func (s *DefaultObservationService) ListObservations(ctx context.Context, f obsRepo.ObservationFilter, limit, offset int) ([]*models.FarmObservation, int, error) {
	return s.Repo.ListObservations(ctx, f, limit, offset)
}

// VerifyObservation records an officer's verdict. A verdict is final; the
// submitting farmer is notified either way.
func (s *DefaultObservationService) VerifyObservation(ctx context.Context, id, officerID, status, notes string) (*models.FarmObservation, error) {
	logger := utils.GetLogger()

	o, err := s.GetObservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != models.ObservationStatusPending {
		return nil, ErrAlreadyVerified
	}
	if status != models.ObservationStatusVerified && status != models.ObservationStatusRejected {
		return nil, errors.New("verification status must be verified or rejected")
	}

	at := s.now()
	if err := s.Repo.SetVerification(ctx, id, status, officerID, notes, at); err != nil {
		return nil, err
	}
	o.Status = status
	o.VerifiedBy = officerID
	o.VerifiedAt = &at
	o.VerificationNotes = notes

	farmer, err := s.Accounts.GetByID(ctx, o.AccountID)
	if err != nil || farmer == nil {
		logger.Warn("could not notify observation author", zap.String("observation_id", id))
		return o, nil
	}
	title := "Observation verified"
	body := "Your observation \"" + o.Title + "\" was verified. Thank you for contributing!"
	if status == models.ObservationStatusRejected {
		title = "Observation rejected"
		body = "Your observation \"" + o.Title + "\" could not be verified."
		if notes != "" {
			body += " Officer notes: " + notes
		}
	}
	if _, err := s.Dispatcher.Dispatch(ctx, []*models.Account{farmer}, notification.Message{
		Type:     models.NotificationTypeSystem,
		Priority: models.PriorityLow,
		Title:    title,
		Body:     body,
		Data:     map[string]any{"observation_id": id, "status": status},
	}); err != nil {
		logger.Warn("observation verdict notification failed", zap.Error(err))
	}
	return o, nil
}

func (s *DefaultObservationService) CreateReport(ctx context.Context, rep *models.PestDiseaseReport) (*models.PestDiseaseReport, error) {
	logger := utils.GetLogger()

	if err := s.Repo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	// Severe outbreaks page the county's officers and analysts right away.
	if rep.Severity == models.PestSeveritySevere || rep.Severity == models.PestSeverityHigh {
		staff, err := s.Accounts.ListActiveByRolesAndCounty(ctx,
			[]models.Role{models.RoleFieldOfficer, models.RoleHQAnalyst}, rep.County)
		if err != nil {
			logger.Error("could not list staff for outbreak notification", zap.Error(err))
			return rep, nil
		}
		if _, err := s.Dispatcher.Dispatch(ctx, staff, notification.Message{
			Type:     models.NotificationTypeAlert,
			Priority: models.PriorityHigh,
			Title:    "Pest/disease outbreak reported",
			Body:     rep.Name + " (" + rep.Severity + ") on " + rep.AffectedCrop + " in " + rep.County,
			Data: map[string]any{
				"report_id": rep.ID,
				"severity":  rep.Severity,
				"county":    rep.County,
			},
			SendSMS: rep.Severity == models.PestSeveritySevere,
		}); err != nil {
			logger.Error("outbreak notification failed", zap.Error(err))
		}
	}
	return rep, nil
}

func (s *DefaultObservationService) GetReport(ctx context.Context, id string) (*models.PestDiseaseReport, error) {
	rep, err := s.Repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrObservationNotFound
	}
	return rep, nil
}

func (s *DefaultObservationService) ListReports(ctx context.Context, f obsRepo.ReportFilter, limit, offset int) ([]*models.PestDiseaseReport, int, error) {
	return s.Repo.ListReports(ctx, f, limit, offset)
}

func (s *DefaultObservationService) ResolveReport(ctx context.Context, id string) error {
	if _, err := s.GetReport(ctx, id); err != nil {
		return err
	}
	return s.Repo.ResolveReport(ctx, id, s.now())
}

func (s *DefaultObservationService) Hotspots(ctx context.Context, days, minReports int) ([]*models.PestHotspot, error) {
	if days <= 0 {
		days = 30
	}
	if minReports <= 0 {
		minReports = 3
	}
	return s.Repo.Hotspots(ctx, s.now().AddDate(0, 0, -days), minReports)
}
