package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	obsRepo "croppulse/database/repository/observation"
	"croppulse/models"
	"croppulse/services/user"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	byID map[string]*models.Account
}

func (s *stubAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	return s.byID[id], nil
}
func (s *stubAccounts) Create(context.Context, *models.Account) error { return nil }
func (s *stubAccounts) GetByPhone(context.Context, string) (*models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) UpdateProfile(context.Context, *models.Account) error  { return nil }
func (s *stubAccounts) UpdatePassword(context.Context, string, string) error  { return nil }
func (s *stubAccounts) UpdateFCMToken(context.Context, string, string) error  { return nil }
func (s *stubAccounts) SetLastLogin(context.Context, string, time.Time) error { return nil }
func (s *stubAccounts) SetVerificationCode(context.Context, string, string, time.Time) error {
	return nil
}
func (s *stubAccounts) ConsumeVerificationCode(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubAccounts) UpsertFarmerProfile(context.Context, *models.FarmerProfile) error { return nil }
func (s *stubAccounts) UpsertFieldOfficerProfile(context.Context, *models.FieldOfficerProfile) error {
	return nil
}
func (s *stubAccounts) ListActiveByCounties(context.Context, []string) ([]*models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) ListActiveByRolesAndCounty(context.Context, []models.Role, string) ([]*models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) ListActiveByRole(context.Context, models.Role) ([]*models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) List(context.Context, models.Role, int, int) ([]*models.Account, int, error) {
	return nil, 0, nil
}

type stubNotifs struct {
	unread    int
	unreadErr error
}

func (s *stubNotifs) BulkCreate(context.Context, []*models.Notification) (int, error) {
	return 0, nil
}
func (s *stubNotifs) ListByAccount(context.Context, string, int, int) ([]*models.Notification, int, error) {
	return nil, 0, nil
}
func (s *stubNotifs) MarkRead(context.Context, string, string, time.Time) error { return nil }
func (s *stubNotifs) MarkAllRead(context.Context, string, time.Time) (int, error) {
	return 0, nil
}
func (s *stubNotifs) UnreadCount(context.Context, string) (int, error) {
	return s.unread, s.unreadErr
}
func (s *stubNotifs) MarkSentViaPush(context.Context, []string) error { return nil }
func (s *stubNotifs) MarkSentViaSMS(context.Context, []string) error  { return nil }
func (s *stubNotifs) DeleteReadOlderThan(context.Context, time.Time) (int, error) {
	return 0, nil
}

type stubAlerts struct {
	active []*models.Alert
}

func (s *stubAlerts) CreateAlert(context.Context, *models.Alert) error { return nil }
func (s *stubAlerts) GetAlert(context.Context, string) (*models.Alert, error) {
	return nil, nil
}
func (s *stubAlerts) ListAlerts(context.Context, string, string, int, int) ([]*models.Alert, int, error) {
	return nil, 0, nil
}
func (s *stubAlerts) ListActiveAlerts(context.Context, time.Time) ([]*models.Alert, error) {
	return s.active, nil
}
func (s *stubAlerts) UpdateAlertStatus(context.Context, string, string) error { return nil }
func (s *stubAlerts) SetAlertRecipients(context.Context, string, int) error   { return nil }
func (s *stubAlerts) AlertExists(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}
func (s *stubAlerts) ExpireAlertsBefore(context.Context, time.Time) (int, error) {
	return 0, nil
}
func (s *stubAlerts) CreateAdvisory(context.Context, *models.Advisory) error { return nil }
func (s *stubAlerts) GetAdvisory(context.Context, string) (*models.Advisory, error) {
	return nil, nil
}
func (s *stubAlerts) ListAdvisories(context.Context, string, bool, time.Time, int, int) ([]*models.Advisory, int, error) {
	return nil, 0, nil
}
func (s *stubAlerts) SetAdvisoryRecipients(context.Context, string, int) error { return nil }
func (s *stubAlerts) DeactivateAdvisory(context.Context, string) error         { return nil }

type stubWeather struct {
	latest    *models.WeatherData
	latestErr error
}

func (s *stubWeather) ListActiveStations(context.Context) ([]*models.WeatherStation, error) {
	return nil, nil
}
func (s *stubWeather) GetStationByCode(context.Context, string) (*models.WeatherStation, error) {
	return nil, nil
}
func (s *stubWeather) CreateStation(context.Context, *models.WeatherStation) error { return nil }
func (s *stubWeather) InsertData(context.Context, *models.WeatherData) error       { return nil }
func (s *stubWeather) LatestByCounty(context.Context, string) (*models.WeatherData, error) {
	return s.latest, s.latestErr
}
func (s *stubWeather) ListData(context.Context, string, time.Time, int, int) ([]*models.WeatherData, int, error) {
	return nil, 0, nil
}
func (s *stubWeather) UpsertForecast(context.Context, *models.WeatherForecast) error { return nil }
func (s *stubWeather) ListForecasts(context.Context, string, time.Time, int) ([]*models.WeatherForecast, error) {
	return nil, nil
}
func (s *stubWeather) SummarizeCounty(context.Context, string, time.Time) (*models.WeatherSummary, error) {
	return nil, nil
}

type stubObservations struct {
	filters []obsRepo.ObservationFilter
}

func (s *stubObservations) CreateObservation(context.Context, *models.FarmObservation) error {
	return nil
}
func (s *stubObservations) GetObservation(context.Context, string) (*models.FarmObservation, error) {
	return nil, nil
}
func (s *stubObservations) ListObservations(_ context.Context, f obsRepo.ObservationFilter, _, _ int) ([]*models.FarmObservation, int, error) {
	s.filters = append(s.filters, f)
	if f.Status == models.ObservationStatusPending {
		return nil, 4, nil
	}
	return nil, 9, nil
}
func (s *stubObservations) SetVerification(context.Context, string, string, string, string, time.Time) error {
	return nil
}
func (s *stubObservations) CreateReport(context.Context, *models.PestDiseaseReport) error {
	return nil
}
func (s *stubObservations) GetReport(context.Context, string) (*models.PestDiseaseReport, error) {
	return nil, nil
}
func (s *stubObservations) ListReports(context.Context, obsRepo.ReportFilter, int, int) ([]*models.PestDiseaseReport, int, error) {
	return nil, 2, nil
}
func (s *stubObservations) ResolveReport(context.Context, string, time.Time) error { return nil }
func (s *stubObservations) Hotspots(context.Context, time.Time, int) ([]*models.PestHotspot, error) {
	return nil, nil
}

func dashboardFixture(acct *models.Account) (*DefaultDashboardService, *stubAlerts, *stubWeather, *stubNotifs, *stubObservations) {
	alerts := &stubAlerts{}
	weather := &stubWeather{}
	notifs := &stubNotifs{}
	observations := &stubObservations{}
	svc := &DefaultDashboardService{
		Accounts:     &stubAccounts{byID: map[string]*models.Account{acct.ID: acct}},
		Notifs:       notifs,
		Alerts:       alerts,
		Weather:      weather,
		Observations: observations,
		Clock:        clockwork.NewFakeClockAt(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)),
	}
	return svc, alerts, weather, notifs, observations
}

func TestFarmerDashboard(t *testing.T) {
	acct := &models.Account{ID: "acct-1", County: "Nakuru", Role: models.RoleFarmer}
	svc, alerts, weather, notifs, _ := dashboardFixture(acct)

	alerts.active = []*models.Alert{
		{ID: "alert-1", Counties: []string{"Nakuru", "Kisumu"}},
		{ID: "alert-2", Counties: []string{"Kisumu"}},
	}
	weather.latest = &models.WeatherData{County: "Nakuru", Temperature: 23.5}
	notifs.unread = 7

	d, err := svc.FarmerDashboard(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, acct, d.Account)
	require.Len(t, d.ActiveAlerts, 1)
	assert.Equal(t, "alert-1", d.ActiveAlerts[0].ID)
	require.NotNil(t, d.Weather)
	assert.Equal(t, 23.5, d.Weather.Temperature)
	assert.Equal(t, 7, d.UnreadNotifications)
}

func TestFarmerDashboardSurvivesMissingWeather(t *testing.T) {
	acct := &models.Account{ID: "acct-1", County: "Turkana", Role: models.RoleFarmer}
	svc, _, weather, notifs, _ := dashboardFixture(acct)

	weather.latestErr = errors.New("no readings yet")
	notifs.unreadErr = errors.New("redis down")

	d, err := svc.FarmerDashboard(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Nil(t, d.Weather)
	assert.Zero(t, d.UnreadNotifications)
}

func TestFarmerDashboardUnknownAccount(t *testing.T) {
	svc, _, _, _, _ := dashboardFixture(&models.Account{ID: "acct-1"})

	_, err := svc.FarmerDashboard(context.Background(), "nope")
	assert.ErrorIs(t, err, user.ErrAccountNotFound)
}

func TestOfficerDashboard(t *testing.T) {
	acct := &models.Account{ID: "off-1", County: "Nakuru", Role: models.RoleFieldOfficer}
	svc, alerts, _, _, observations := dashboardFixture(acct)
	alerts.active = []*models.Alert{{ID: "alert-1", Counties: []string{"Nakuru"}}}

	d, err := svc.OfficerDashboard(context.Background(), "off-1")
	require.NoError(t, err)
	assert.Equal(t, 4, d.PendingVerifications)
	assert.Equal(t, 9, d.ObservationsToday)
	assert.Equal(t, 2, d.UnresolvedReports)
	assert.Len(t, d.ActiveAlerts, 1)

	require.Len(t, observations.filters, 2)
	assert.Equal(t, "Nakuru", observations.filters[0].County)
	assert.Equal(t, models.ObservationStatusPending, observations.filters[0].Status)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), observations.filters[1].Since)
}

func TestOnboardingStatus(t *testing.T) {
	tests := []struct {
		name string
		acct models.Account
		want models.OnboardingStatus
	}{
		{
			"fresh registration",
			models.Account{},
			models.OnboardingStatus{},
		},
		{
			"verified but bare profile",
			models.Account{IsVerified: true},
			models.OnboardingStatus{PhoneVerified: true},
		},
		{
			"farmer missing crop",
			models.Account{
				Role:       models.RoleFarmer,
				IsVerified: true,
				FullName:   "Wanjiku Kamau",
				County:     "Nakuru",
				FCMToken:   "fcm-token",
			},
			models.OnboardingStatus{PhoneVerified: true, NotificationsSetUp: true},
		},
		{
			"farmer fully set up",
			models.Account{
				Role:          models.RoleFarmer,
				IsVerified:    true,
				FullName:      "Wanjiku Kamau",
				County:        "Nakuru",
				FCMToken:      "fcm-token",
				FarmerProfile: &models.FarmerProfile{PrimaryCrop: "maize"},
			},
			models.OnboardingStatus{
				PhoneVerified:      true,
				ProfileComplete:    true,
				NotificationsSetUp: true,
				Complete:           true,
			},
		},
		{
			"officer needs no farm details",
			models.Account{
				Role:       models.RoleFieldOfficer,
				IsVerified: true,
				FullName:   "Otieno Odhiambo",
				County:     "Kisumu",
				FCMToken:   "fcm-token",
			},
			models.OnboardingStatus{
				PhoneVerified:      true,
				ProfileComplete:    true,
				NotificationsSetUp: true,
				Complete:           true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := tt.acct
			acct.ID = "acct-1"
			svc, _, _, _, _ := dashboardFixture(&acct)

			status, err := svc.OnboardingStatus(context.Background(), "acct-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, *status)
		})
	}
}
