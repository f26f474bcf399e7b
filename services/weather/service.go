// Package weather ingests provider readings for the monitored stations and
// serves current, historical and forecast weather per county.
package weather

import (
	"context"
	"errors"
	"time"

	weatherRepo "croppulse/database/repository/weather"
	"croppulse/models"
	"croppulse/services/gateway"
	"croppulse/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrNoWeatherData signals that no reading exists for the county yet.
var ErrNoWeatherData = errors.New("no weather data for county")

// WeatherService serves weather readings and runs the periodic refresh.
type WeatherService interface {
	Current(ctx context.Context, county string) (*models.WeatherData, error)
	History(ctx context.Context, county string, days, limit, offset int) ([]*models.WeatherData, int, error)
	Forecast(ctx context.Context, county string, days int) ([]*models.WeatherForecast, error)
	Summary(ctx context.Context, county string, days int) (*models.WeatherSummary, error)
	ListStations(ctx context.Context) ([]*models.WeatherStation, error)
	CreateStation(ctx context.Context, st *models.WeatherStation) error

	// RefreshAll pulls current conditions and forecasts for every active
	// station. Station failures are logged and skipped; returns the number
	// of stations refreshed.
	RefreshAll(ctx context.Context) (int, error)
}

// DefaultWeatherService is the production implementation.
type DefaultWeatherService struct {
	Repo    weatherRepo.WeatherRepository
	Gateway gateway.WeatherGateway
	Clock   clockwork.Clock
}

func (s *DefaultWeatherService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultWeatherService) Current(ctx context.Context, county string) (*models.WeatherData, error) {
	d, err := s.Repo.LatestByCounty(ctx, county)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNoWeatherData
	}
	return d, nil
}

func (s *DefaultWeatherService) History(ctx context.Context, county string, days, limit, offset int) ([]*models.WeatherData, int, error) {
	if days <= 0 {
		days = 7
	}
	since := s.now().AddDate(0, 0, -days)
	return s.Repo.ListData(ctx, county, since, limit, offset)
}

func (s *DefaultWeatherService) Forecast(ctx context.Context, county string, days int) ([]*models.WeatherForecast, error) {
	if days <= 0 || days > 5 {
		days = 5
	}
	from := s.now().Truncate(24 * time.Hour)
	return s.Repo.ListForecasts(ctx, county, from, days)
}

func (s *DefaultWeatherService) Summary(ctx context.Context, county string, days int) (*models.WeatherSummary, error) {
	if days <= 0 {
		days = 7
	}
	summary, err := s.Repo.SummarizeCounty(ctx, county, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	summary.PeriodDays = days
	return summary, nil
}

func (s *DefaultWeatherService) ListStations(ctx context.Context) ([]*models.WeatherStation, error) {
	return s.Repo.ListActiveStations(ctx)
}

func (s *DefaultWeatherService) CreateStation(ctx context.Context, st *models.WeatherStation) error {
	st.IsActive = true
	return s.Repo.CreateStation(ctx, st)
}

func (s *DefaultWeatherService) RefreshAll(ctx context.Context) (int, error) {
	logger := utils.GetLogger()

	stations, err := s.Repo.ListActiveStations(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, st := range stations {
		if err := s.refreshStation(ctx, st); err != nil {
			logger.Warn("station refresh failed",
				zap.String("station", st.Code), zap.Error(err))
			continue
		}
		refreshed++
	}
	logger.Info("weather refresh complete",
		zap.Int("refreshed", refreshed),
		zap.Int("stations", len(stations)))
	return refreshed, nil
}

func (s *DefaultWeatherService) refreshStation(ctx context.Context, st *models.WeatherStation) error {
	current, err := s.Gateway.Current(ctx, st.Latitude, st.Longitude)
	if err != nil {
		return err
	}
	current.StationID = st.ID
	current.County = st.County
	if err := s.Repo.InsertData(ctx, current); err != nil {
		return err
	}

	forecasts, err := s.Gateway.Forecast(ctx, st.Latitude, st.Longitude, 5)
	if err != nil {
		return err
	}
	for _, f := range forecasts {
		f.County = st.County
		if err := s.Repo.UpsertForecast(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
