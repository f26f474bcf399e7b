package observation

import (
	"context"
	"testing"
	"time"

	obsRepo "croppulse/database/repository/observation"
	"croppulse/models"
	"croppulse/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestQualityScore(t *testing.T) {
	longDescription := "Maize leaves show yellow streaking along the veins, worst on the lower canopy near the river."

	tests := []struct {
		name string
		obs  models.FarmObservation
		want int
	}{
		{"empty submission", models.FarmObservation{}, 0},
		{"long description only", models.FarmObservation{Description: longDescription}, 20},
		{"short description scores nothing", models.FarmObservation{Description: "yellow leaves"}, 0},
		{"one image", models.FarmObservation{ImageCount: 1}, 10},
		{"images capped at three", models.FarmObservation{ImageCount: 7}, 30},
		{"coordinates", models.FarmObservation{Latitude: -0.42, Longitude: 36.95}, 15},
		{"weather measurement", models.FarmObservation{Temperature: floatPtr(24.5)}, 15},
		{"location description", models.FarmObservation{LocationDescription: "lower field by the river"}, 20},
		{
			"everything",
			models.FarmObservation{
				Description:         longDescription,
				ImageCount:          5,
				Latitude:            -0.42,
				Longitude:           36.95,
				Temperature:         floatPtr(24.5),
				Rainfall:            floatPtr(12.0),
				LocationDescription: "lower field by the river",
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualityScore(&tt.obs))
		})
	}
}

type fakeObsRepo struct {
	observations map[string]*models.FarmObservation
	verified     []string
}

func newFakeObsRepo() *fakeObsRepo {
	return &fakeObsRepo{observations: map[string]*models.FarmObservation{}}
}

func (f *fakeObsRepo) CreateObservation(_ context.Context, o *models.FarmObservation) error {
	if o.ID == "" {
		o.ID = "obs-1"
	}
	f.observations[o.ID] = o
	return nil
}

func (f *fakeObsRepo) GetObservation(_ context.Context, id string) (*models.FarmObservation, error) {
	return f.observations[id], nil
}

func (f *fakeObsRepo) ListObservations(context.Context, obsRepo.ObservationFilter, int, int) ([]*models.FarmObservation, int, error) {
	return nil, 0, nil
}

func (f *fakeObsRepo) SetVerification(_ context.Context, id, status, verifiedBy, notes string, at time.Time) error {
	f.verified = append(f.verified, id)
	return nil
}

func (f *fakeObsRepo) CreateReport(context.Context, *models.PestDiseaseReport) error { return nil }
func (f *fakeObsRepo) GetReport(context.Context, string) (*models.PestDiseaseReport, error) {
	return nil, nil
}
func (f *fakeObsRepo) ListReports(context.Context, obsRepo.ReportFilter, int, int) ([]*models.PestDiseaseReport, int, error) {
	return nil, 0, nil
}
func (f *fakeObsRepo) ResolveReport(context.Context, string, time.Time) error { return nil }
func (f *fakeObsRepo) Hotspots(context.Context, time.Time, int) ([]*models.PestHotspot, error) {
	return nil, nil
}

type fakeAccounts struct {
	byID map[string]*models.Account
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	return f.byID[id], nil
}

type recordingDispatcher struct {
	messages []notification.Message
	targets  [][]*models.Account
}

func (d *recordingDispatcher) Dispatch(_ context.Context, accounts []*models.Account, msg notification.Message) (int, error) {
	d.messages = append(d.messages, msg)
	d.targets = append(d.targets, accounts)
	return len(accounts), nil
}

// accountsStub satisfies the account repository with only the methods the
// observation service touches.
type accountsStub struct {
	fakeAccounts
	staff []*models.Account
}

func (s *accountsStub) Create(context.Context, *models.Account) error { return nil }
func (s *accountsStub) GetByPhone(context.Context, string) (*models.Account, error) {
	return nil, nil
}
func (s *accountsStub) UpdateProfile(context.Context, *models.Account) error { return nil }
func (s *accountsStub) UpdatePassword(context.Context, string, string) error { return nil }
func (s *accountsStub) UpdateFCMToken(context.Context, string, string) error { return nil }
func (s *accountsStub) SetLastLogin(context.Context, string, time.Time) error {
	return nil
}
func (s *accountsStub) SetVerificationCode(context.Context, string, string, time.Time) error {
	return nil
}
func (s *accountsStub) ConsumeVerificationCode(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *accountsStub) UpsertFarmerProfile(context.Context, *models.FarmerProfile) error {
	return nil
}
func (s *accountsStub) UpsertFieldOfficerProfile(context.Context, *models.FieldOfficerProfile) error {
	return nil
}
func (s *accountsStub) ListActiveByCounties(context.Context, []string) ([]*models.Account, error) {
	return nil, nil
}
func (s *accountsStub) ListActiveByRolesAndCounty(context.Context, []models.Role, string) ([]*models.Account, error) {
	return s.staff, nil
}
func (s *accountsStub) ListActiveByRole(context.Context, models.Role) ([]*models.Account, error) {
	return nil, nil
}
func (s *accountsStub) List(context.Context, models.Role, int, int) ([]*models.Account, int, error) {
	return nil, 0, nil
}

func TestCreateObservationScoresAndPends(t *testing.T) {
	repo := newFakeObsRepo()
	svc := &DefaultObservationService{Repo: repo}

	o, err := svc.CreateObservation(context.Background(), &models.FarmObservation{
		AccountID:  "farmer-1",
		Title:      "Yellowing maize",
		ImageCount: 2,
		Latitude:   -0.42,
		Longitude:  36.95,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ObservationStatusPending, o.Status)
	assert.Equal(t, 35, o.QualityScore)
}

func TestVerifyObservationIsFinal(t *testing.T) {
	repo := newFakeObsRepo()
	farmer := &models.Account{ID: "farmer-1", ReceivePush: true}
	accounts := &accountsStub{fakeAccounts: fakeAccounts{byID: map[string]*models.Account{"farmer-1": farmer}}}
	dispatcher := &recordingDispatcher{}
	svc := &DefaultObservationService{Repo: repo, Accounts: accounts, Dispatcher: dispatcher}

	repo.observations["obs-1"] = &models.FarmObservation{
		ID:        "obs-1",
		AccountID: "farmer-1",
		Title:     "Yellowing maize",
		Status:    models.ObservationStatusPending,
	}

	o, err := svc.VerifyObservation(context.Background(), "obs-1", "officer-1", models.ObservationStatusVerified, "confirmed on site")
	require.NoError(t, err)
	assert.Equal(t, models.ObservationStatusVerified, o.Status)
	assert.Equal(t, "officer-1", o.VerifiedBy)
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, "Observation verified", dispatcher.messages[0].Title)
	assert.Equal(t, []*models.Account{farmer}, dispatcher.targets[0])

	// A second verdict is rejected.
	_, err = svc.VerifyObservation(context.Background(), "obs-1", "officer-2", models.ObservationStatusRejected, "")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyObservationRejectionNotifiesWithNotes(t *testing.T) {
	repo := newFakeObsRepo()
	farmer := &models.Account{ID: "farmer-1"}
	accounts := &accountsStub{fakeAccounts: fakeAccounts{byID: map[string]*models.Account{"farmer-1": farmer}}}
	dispatcher := &recordingDispatcher{}
	svc := &DefaultObservationService{Repo: repo, Accounts: accounts, Dispatcher: dispatcher}

	repo.observations["obs-1"] = &models.FarmObservation{
		ID:        "obs-1",
		AccountID: "farmer-1",
		Title:     "Blurry photo",
		Status:    models.ObservationStatusPending,
	}

	_, err := svc.VerifyObservation(context.Background(), "obs-1", "officer-1", models.ObservationStatusRejected, "image unusable")
	require.NoError(t, err)
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, "Observation rejected", dispatcher.messages[0].Title)
	assert.Contains(t, dispatcher.messages[0].Body, "image unusable")
}

func TestVerifyObservationUnknownID(t *testing.T) {
	svc := &DefaultObservationService{Repo: newFakeObsRepo()}
	_, err := svc.VerifyObservation(context.Background(), "missing", "officer-1", models.ObservationStatusVerified, "")
	assert.ErrorIs(t, err, ErrObservationNotFound)
}

func TestCreateReportSeverityGating(t *testing.T) {
	tests := []struct {
		severity   string
		wantNotify bool
		wantSMS    bool
	}{
		{models.PestSeverityLow, false, false},
		{models.PestSeverityMedium, false, false},
		{models.PestSeverityHigh, true, false},
		{models.PestSeveritySevere, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			dispatcher := &recordingDispatcher{}
			accounts := &accountsStub{staff: []*models.Account{{ID: "officer-1"}}}
			svc := &DefaultObservationService{Repo: newFakeObsRepo(), Accounts: accounts, Dispatcher: dispatcher}

			_, err := svc.CreateReport(context.Background(), &models.PestDiseaseReport{
				Name:         "Fall armyworm",
				AffectedCrop: "maize",
				County:       "Nakuru",
				Severity:     tt.severity,
			})
			require.NoError(t, err)

			if !tt.wantNotify {
				assert.Empty(t, dispatcher.messages)
				return
			}
			require.Len(t, dispatcher.messages, 1)
			assert.Equal(t, tt.wantSMS, dispatcher.messages[0].SendSMS)
		})
	}
}
