package alert

import (
	"context"
	"errors"
	"strings"
	"time"

	"croppulse/models"
	"croppulse/services/notification"
	"croppulse/utils"

	"go.uber.org/zap"
)

// ErrAlertNotFound signals that no alert or advisory matches the identifier.
var ErrAlertNotFound = errors.New("alert not found")

func (s *DefaultAlertService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// smsSeverities lists the alert severities worth the cost of an SMS.
var smsSeverities = map[string]bool{
	models.SeverityHigh:     true,
	models.SeverityCritical: true,
}

// advisorySMSSeverities lists the advisory severities worth an SMS.
var advisorySMSSeverities = map[string]bool{
	models.AdvisorySeverityWarning:   true,
	models.AdvisorySeverityEmergency: true,
}

func alertPriority(severity string) string {
	switch severity {
	case models.SeverityCritical:
		return models.PriorityUrgent
	case models.SeverityHigh:
		return models.PriorityHigh
	case models.SeverityMedium:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// CreateAlert stores the alert and, unless it is a draft, fans it out to all
// active accounts in the target counties. The recipient count is written
// once, at send time.
func (s *DefaultAlertService) CreateAlert(ctx context.Context, req CreateAlertRequest, createdBy string) (*models.Alert, error) {
	logger := utils.GetLogger()

	status := models.AlertStatusActive
	if req.Draft {
		status = models.AlertStatusDraft
	}
	a := &models.Alert{
		Type:              req.Type,
		Severity:          req.Severity,
		Title:             req.Title,
		Message:           req.Message,
		Counties:          req.Counties,
		Subcounties:       req.Subcounties,
		StartTime:         req.StartTime.UTC(),
		EndTime:           req.EndTime.UTC(),
		Status:            status,
		Recommendations:   req.Recommendations,
		ActionRequired:    req.ActionRequired,
		ActionDescription: req.ActionDescription,
		CreatedBy:         createdBy,
	}
	if err := s.Repo.CreateAlert(ctx, a); err != nil {
		return nil, err
	}
	if status != models.AlertStatusActive {
		return a, nil
	}

	created, err := s.fanOutAlert(ctx, a)
	if err != nil {
		logger.Error("alert fan-out failed", zap.String("alert_id", a.ID), zap.Error(err))
		return a, nil
	}
	a.RecipientsCount = created
	if err := s.Repo.SetAlertRecipients(ctx, a.ID, created); err != nil {
		logger.Warn("failed to record alert recipients", zap.Error(err))
	}
	logger.Info("alert dispatched",
		zap.String("alert_id", a.ID),
		zap.String("severity", a.Severity),
		zap.Int("recipients", created))
	return a, nil
}

func (s *DefaultAlertService) fanOutAlert(ctx context.Context, a *models.Alert) (int, error) {
	accounts, err := s.Accounts.ListActiveByCounties(ctx, a.Counties)
	if err != nil {
		return 0, err
	}
	return s.Dispatcher.Dispatch(ctx, accounts, notification.Message{
		Type:     models.NotificationTypeAlert,
		Priority: alertPriority(a.Severity),
		Title:    a.Title,
		Body:     a.Message,
		Data: map[string]any{
			"alert_id":   a.ID,
			"alert_type": a.Type,
			"severity":   a.Severity,
		},
		SendSMS: smsSeverities[a.Severity],
	})
}

func (s *DefaultAlertService) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	a, err := s.Repo.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAlertNotFound
	}
	return a, nil
}

func (s *DefaultAlertService) ListAlerts(ctx context.Context, county, status string, limit, offset int) ([]*models.Alert, int, error) {
	return s.Repo.ListAlerts(ctx, county, status, limit, offset)
}

func (s *DefaultAlertService) ListActiveAlerts(ctx context.Context) ([]*models.Alert, error) {
	return s.Repo.ListActiveAlerts(ctx, s.now())
}

func (s *DefaultAlertService) CancelAlert(ctx context.Context, id string) error {
	if _, err := s.GetAlert(ctx, id); err != nil {
		return err
	}
	return s.Repo.UpdateAlertStatus(ctx, id, models.AlertStatusCancelled)
}

// CreateAdvisory stores the advisory and fans it out to farmers in the
// target counties.
func (s *DefaultAlertService) CreateAdvisory(ctx context.Context, req CreateAdvisoryRequest, createdBy string) (*models.Advisory, error) {
	logger := utils.GetLogger()

	adv := &models.Advisory{
		Title:           req.Title,
		Message:         req.Message,
		Severity:        req.Severity,
		Counties:        req.Counties,
		Recommendations: req.Recommendations,
		ValidFrom:       req.ValidFrom.UTC(),
		ValidUntil:      req.ValidUntil.UTC(),
		IsActive:        true,
		CreatedBy:       createdBy,
	}
	if err := s.Repo.CreateAdvisory(ctx, adv); err != nil {
		return nil, err
	}

	accounts, err := s.Accounts.ListActiveByCounties(ctx, adv.Counties)
	if err != nil {
		logger.Error("advisory fan-out failed", zap.String("advisory_id", adv.ID), zap.Error(err))
		return adv, nil
	}
	created, err := s.Dispatcher.Dispatch(ctx, accounts, notification.Message{
		Type:     models.NotificationTypeAdvisory,
		Priority: models.PriorityMedium,
		Title:    adv.Title,
		Body:     adv.Message,
		Data: map[string]any{
			"advisory_id": adv.ID,
			"severity":    adv.Severity,
		},
		SendSMS: advisorySMSSeverities[adv.Severity],
	})
	if err != nil {
		logger.Error("advisory fan-out failed", zap.String("advisory_id", adv.ID), zap.Error(err))
		return adv, nil
	}
	adv.RecipientsCount = created
	if err := s.Repo.SetAdvisoryRecipients(ctx, adv.ID, created); err != nil {
		logger.Warn("failed to record advisory recipients", zap.Error(err))
	}
	return adv, nil
}

func (s *DefaultAlertService) ListAdvisories(ctx context.Context, county string, activeOnly bool, limit, offset int) ([]*models.Advisory, int, error) {
	return s.Repo.ListAdvisories(ctx, county, activeOnly, s.now(), limit, offset)
}

func (s *DefaultAlertService) DeactivateAdvisory(ctx context.Context, id string) error {
	adv, err := s.Repo.GetAdvisory(ctx, id)
	if err != nil {
		return err
	}
	if adv == nil {
		return ErrAlertNotFound
	}
	return s.Repo.DeactivateAdvisory(ctx, id)
}

// ScanWeatherEvents checks the provider's weather alerts at each active
// station and raises one alert per new event and county. Events already
// alerted on (same title, county and start) are skipped.
func (s *DefaultAlertService) ScanWeatherEvents(ctx context.Context) (int, error) {
	logger := utils.GetLogger()

	stations, err := s.Stations.ListActiveStations(ctx)
	if err != nil {
		return 0, err
	}

	raised := 0
	for _, st := range stations {
		events, err := s.Weather.Events(ctx, st.Latitude, st.Longitude)
		if err != nil {
			logger.Warn("weather event fetch failed",
				zap.String("station", st.Code), zap.Error(err))
			continue
		}
		for _, ev := range events {
			title := "Weather alert: " + ev.Event
			exists, err := s.Repo.AlertExists(ctx, title, st.County, ev.Start)
			if err != nil {
				logger.Warn("alert dedup check failed", zap.Error(err))
				continue
			}
			if exists {
				continue
			}
			req := CreateAlertRequest{
				Type:      models.AlertTypeWeather,
				Severity:  eventSeverity(ev.Event),
				Title:     title,
				Message:   ev.Description,
				Counties:  []string{st.County},
				StartTime: ev.Start,
				EndTime:   ev.End,
			}
			if _, err := s.CreateAlert(ctx, req, ""); err != nil {
				logger.Error("failed to raise weather alert",
					zap.String("event", ev.Event), zap.Error(err))
				continue
			}
			raised++
		}
	}
	return raised, nil
}

// eventSeverity maps a provider event name to an alert severity.
func eventSeverity(event string) string {
	e := strings.ToLower(event)
	switch {
	case strings.Contains(e, "extreme"), strings.Contains(e, "hurricane"),
		strings.Contains(e, "cyclone"), strings.Contains(e, "tornado"):
		return models.SeverityCritical
	case strings.Contains(e, "warning"), strings.Contains(e, "storm"),
		strings.Contains(e, "flood"):
		return models.SeverityHigh
	case strings.Contains(e, "watch"), strings.Contains(e, "advisory"):
		return models.SeverityMedium
	default:
		return models.SeverityMedium
	}
}

func (s *DefaultAlertService) ExpireStale(ctx context.Context) (int, error) {
	return s.Repo.ExpireAlertsBefore(ctx, s.now())
}
