package weather

import (
	"context"
	"time"

	"croppulse/models"
)

// WeatherRepository persists stations, readings and forecasts.
// Lookups return (nil, nil) when nothing matches.
type WeatherRepository interface {
	ListActiveStations(ctx context.Context) ([]*models.WeatherStation, error)
	GetStationByCode(ctx context.Context, code string) (*models.WeatherStation, error)
	CreateStation(ctx context.Context, s *models.WeatherStation) error

	InsertData(ctx context.Context, d *models.WeatherData) error
	LatestByCounty(ctx context.Context, county string) (*models.WeatherData, error)
	ListData(ctx context.Context, county string, since time.Time, limit, offset int) ([]*models.WeatherData, int, error)

	UpsertForecast(ctx context.Context, f *models.WeatherForecast) error
	ListForecasts(ctx context.Context, county string, from time.Time, days int) ([]*models.WeatherForecast, error)

	SummarizeCounty(ctx context.Context, county string, since time.Time) (*models.WeatherSummary, error)
}
