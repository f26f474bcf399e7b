// Package dashboard composes the per-role home views served to the mobile
// apps: a farmer's daily snapshot and a field officer's work queue.
package dashboard

import (
	"context"
	"time"

	alertRepo "croppulse/database/repository/alert"
	obsRepo "croppulse/database/repository/observation"
	userRepo "croppulse/database/repository/user"
	weatherRepo "croppulse/database/repository/weather"
	"croppulse/models"
	"croppulse/services/user"
	"croppulse/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DashboardService serves the role-specific home views.
type DashboardService interface {
	FarmerDashboard(ctx context.Context, accountID string) (*models.FarmerDashboard, error)
	OfficerDashboard(ctx context.Context, accountID string) (*models.FieldOfficerDashboard, error)
	OnboardingStatus(ctx context.Context, accountID string) (*models.OnboardingStatus, error)
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	Accounts     userRepo.AccountRepository
	Notifs       userRepo.NotificationRepository
	Alerts       alertRepo.AlertRepository
	Weather      weatherRepo.WeatherRepository
	Observations obsRepo.ObservationRepository
	Clock        clockwork.Clock
}

func (s *DefaultDashboardService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultDashboardService) requireAccount(ctx context.Context, id string) (*models.Account, error) {
	acct, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, user.ErrAccountNotFound
	}
	return acct, nil
}

// countyAlerts filters the active alerts down to those targeting the county.
func (s *DefaultDashboardService) countyAlerts(ctx context.Context, county string) ([]*models.Alert, error) {
	active, err := s.Alerts.ListActiveAlerts(ctx, s.now())
	if err != nil {
		return nil, err
	}
	out := []*models.Alert{}
	for _, a := range active {
		for _, c := range a.Counties {
			if c == county {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

// FarmerDashboard bundles the farmer's profile, the alerts covering their
// county, the latest county weather and their unread notification count.
func (s *DefaultDashboardService) FarmerDashboard(ctx context.Context, accountID string) (*models.FarmerDashboard, error) {
	logger := utils.GetLogger()

	acct, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.countyAlerts(ctx, acct.County)
	if err != nil {
		return nil, err
	}

	d := &models.FarmerDashboard{Account: acct, ActiveAlerts: alerts}

	// Weather and the unread count are nice-to-have; a missing reading must
	// not blank the whole dashboard.
	if weather, err := s.Weather.LatestByCounty(ctx, acct.County); err == nil {
		d.Weather = weather
	} else {
		logger.Warn("dashboard weather lookup failed",
			zap.String("county", acct.County), zap.Error(err))
	}
	if unread, err := s.Notifs.UnreadCount(ctx, accountID); err == nil {
		d.UnreadNotifications = unread
	} else {
		logger.Warn("dashboard unread count failed", zap.Error(err))
	}
	return d, nil
}

// OfficerDashboard bundles the officer's verification queue and county
// outbreak picture.
func (s *DefaultDashboardService) OfficerDashboard(ctx context.Context, accountID string) (*models.FieldOfficerDashboard, error) {
	acct, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	_, pending, err := s.Observations.ListObservations(ctx, obsRepo.ObservationFilter{
		County: acct.County,
		Status: models.ObservationStatusPending,
	}, 1, 0)
	if err != nil {
		return nil, err
	}

	midnight := s.now().Truncate(24 * time.Hour)
	_, today, err := s.Observations.ListObservations(ctx, obsRepo.ObservationFilter{
		County: acct.County,
		Since:  midnight,
	}, 1, 0)
	if err != nil {
		return nil, err
	}

	_, unresolved, err := s.Observations.ListReports(ctx, obsRepo.ReportFilter{
		County:         acct.County,
		UnresolvedOnly: true,
	}, 1, 0)
	if err != nil {
		return nil, err
	}

	alerts, err := s.countyAlerts(ctx, acct.County)
	if err != nil {
		return nil, err
	}

	return &models.FieldOfficerDashboard{
		PendingVerifications: pending,
		ObservationsToday:    today,
		UnresolvedReports:    unresolved,
		ActiveAlerts:         alerts,
	}, nil
}

// OnboardingStatus reports how far the account has come through setup.
func (s *DefaultDashboardService) OnboardingStatus(ctx context.Context, accountID string) (*models.OnboardingStatus, error) {
	acct, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	profileComplete := acct.FullName != "" && acct.County != ""
	if acct.Role == models.RoleFarmer {
		profileComplete = profileComplete && acct.FarmerProfile != nil &&
			acct.FarmerProfile.PrimaryCrop != ""
	}

	status := &models.OnboardingStatus{
		PhoneVerified:      acct.IsVerified,
		ProfileComplete:    profileComplete,
		NotificationsSetUp: acct.FCMToken != "",
	}
	status.Complete = status.PhoneVerified && status.ProfileComplete && status.NotificationsSetUp
	return status, nil
}
