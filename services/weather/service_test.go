package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"croppulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeatherRepo struct {
	stations     []*models.WeatherStation
	latest       *models.WeatherData
	inserted     []*models.WeatherData
	forecasts    []*models.WeatherForecast
	forecastFrom time.Time
	forecastDays int
}

func (f *fakeWeatherRepo) ListActiveStations(context.Context) ([]*models.WeatherStation, error) {
	return f.stations, nil
}
func (f *fakeWeatherRepo) GetStationByCode(context.Context, string) (*models.WeatherStation, error) {
	return nil, nil
}
func (f *fakeWeatherRepo) CreateStation(context.Context, *models.WeatherStation) error { return nil }

func (f *fakeWeatherRepo) InsertData(_ context.Context, d *models.WeatherData) error {
	f.inserted = append(f.inserted, d)
	return nil
}

func (f *fakeWeatherRepo) LatestByCounty(context.Context, string) (*models.WeatherData, error) {
	return f.latest, nil
}
func (f *fakeWeatherRepo) ListData(context.Context, string, time.Time, int, int) ([]*models.WeatherData, int, error) {
	return nil, 0, nil
}

func (f *fakeWeatherRepo) UpsertForecast(_ context.Context, fc *models.WeatherForecast) error {
	f.forecasts = append(f.forecasts, fc)
	return nil
}

func (f *fakeWeatherRepo) ListForecasts(_ context.Context, _ string, from time.Time, days int) ([]*models.WeatherForecast, error) {
	f.forecastFrom = from
	f.forecastDays = days
	return nil, nil
}

func (f *fakeWeatherRepo) SummarizeCounty(context.Context, string, time.Time) (*models.WeatherSummary, error) {
	return &models.WeatherSummary{County: "Nakuru", RecordCount: 12}, nil
}

type flakyGateway struct {
	failFor map[string]bool
}

func (g *flakyGateway) Current(_ context.Context, lat, _ float64) (*models.WeatherData, error) {
	if g.failFor[key(lat)] {
		return nil, errors.New("provider timeout")
	}
	return &models.WeatherData{Temperature: 22.4, Source: models.WeatherSourceAPI}, nil
}

func (g *flakyGateway) Forecast(_ context.Context, lat, _ float64, days int) ([]*models.WeatherForecast, error) {
	if g.failFor[key(lat)] {
		return nil, errors.New("provider timeout")
	}
	out := make([]*models.WeatherForecast, days)
	for i := range out {
		out[i] = &models.WeatherForecast{TempMax: 25}
	}
	return out, nil
}

func (g *flakyGateway) Events(context.Context, float64, float64) ([]*models.WeatherEvent, error) {
	return nil, nil
}

func key(lat float64) string {
	if lat < 0 {
		return "south"
	}
	return "north"
}

func TestCurrentNoData(t *testing.T) {
	svc := &DefaultWeatherService{Repo: &fakeWeatherRepo{}}
	_, err := svc.Current(context.Background(), "Nakuru")
	assert.ErrorIs(t, err, ErrNoWeatherData)
}

func TestForecastCapsWindow(t *testing.T) {
	repo := &fakeWeatherRepo{}
	svc := &DefaultWeatherService{Repo: repo}

	_, err := svc.Forecast(context.Background(), "Nakuru", 14)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.forecastDays)

	_, err = svc.Forecast(context.Background(), "Nakuru", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.forecastDays)

	_, err = svc.Forecast(context.Background(), "Nakuru", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.forecastDays)
}

func TestSummaryDefaultsWindow(t *testing.T) {
	svc := &DefaultWeatherService{Repo: &fakeWeatherRepo{}}
	summary, err := svc.Summary(context.Background(), "Nakuru", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.PeriodDays)
}

func TestRefreshAllSkipsFailingStations(t *testing.T) {
	repo := &fakeWeatherRepo{stations: []*models.WeatherStation{
		{ID: "st-1", Code: "NKR-01", County: "Nakuru", Latitude: 1.2},
		{ID: "st-2", Code: "KSM-01", County: "Kisumu", Latitude: -0.1},
	}}
	svc := &DefaultWeatherService{
		Repo:    repo,
		Gateway: &flakyGateway{failFor: map[string]bool{"south": true}},
	}

	refreshed, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)

	// The reading and forecasts are stamped with the station's county.
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Nakuru", repo.inserted[0].County)
	assert.Equal(t, "st-1", repo.inserted[0].StationID)
	require.Len(t, repo.forecasts, 5)
	assert.Equal(t, "Nakuru", repo.forecasts[0].County)
}
