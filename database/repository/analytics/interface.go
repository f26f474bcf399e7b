package analytics

import (
	"context"
	"time"

	"croppulse/models"
)

// AnalyticsRepository runs the aggregate queries behind the dashboards.
// Aggregates over empty tables return zero values, never errors.
type AnalyticsRepository interface {
	AccountStats(ctx context.Context, county string, newSince time.Time) (*models.AccountStats, error)
	WeatherStats(ctx context.Context, county string, since time.Time) (*models.WeatherStats, error)
	ObservationStats(ctx context.Context, county string, since time.Time) (*models.ObservationStats, error)
	PestDiseaseStats(ctx context.Context, county string, since time.Time) (*models.PestDiseaseStats, error)
	AlertStats(ctx context.Context, county string, since time.Time, now time.Time) (*models.AlertStats, error)
}
