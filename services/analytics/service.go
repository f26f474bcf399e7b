// Package analytics serves the HQ dashboards. Aggregates over empty data
// return zero-valued structs, never errors.
package analytics

import (
	"context"
	"time"

	analyticsRepo "croppulse/database/repository/analytics"
	communityRepo "croppulse/database/repository/community"
	"croppulse/models"

	"github.com/jonboulle/clockwork"
)

// AnalyticsService computes the aggregate views for HQ analysts.
type AnalyticsService interface {
	Dashboard(ctx context.Context, county string) (*models.Dashboard, error)
	AccountStats(ctx context.Context, county string) (*models.AccountStats, error)
	WeatherStats(ctx context.Context, county string, days int) (*models.WeatherStats, error)
	ObservationStats(ctx context.Context, county string, days int) (*models.ObservationStats, error)
	PestDiseaseStats(ctx context.Context, county string, days int) (*models.PestDiseaseStats, error)
	AlertStats(ctx context.Context, county string, days int) (*models.AlertStats, error)
	CommunityStats(ctx context.Context, days int) (*models.CommunityStats, error)
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	Repo      analyticsRepo.AnalyticsRepository
	Community communityRepo.CommunityRepository
	Clock     clockwork.Clock
}

const defaultWindowDays = 30

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func windowDays(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	return days
}

func (s *DefaultAnalyticsService) AccountStats(ctx context.Context, county string) (*models.AccountStats, error) {
	return s.Repo.AccountStats(ctx, county, s.now().AddDate(0, 0, -30))
}

func (s *DefaultAnalyticsService) WeatherStats(ctx context.Context, county string, days int) (*models.WeatherStats, error) {
	days = windowDays(days)
	stats, err := s.Repo.WeatherStats(ctx, county, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}

func (s *DefaultAnalyticsService) ObservationStats(ctx context.Context, county string, days int) (*models.ObservationStats, error) {
	days = windowDays(days)
	stats, err := s.Repo.ObservationStats(ctx, county, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}

func (s *DefaultAnalyticsService) PestDiseaseStats(ctx context.Context, county string, days int) (*models.PestDiseaseStats, error) {
	days = windowDays(days)
	stats, err := s.Repo.PestDiseaseStats(ctx, county, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}

func (s *DefaultAnalyticsService) AlertStats(ctx context.Context, county string, days int) (*models.AlertStats, error) {
	days = windowDays(days)
	now := s.now()
	stats, err := s.Repo.AlertStats(ctx, county, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}

func (s *DefaultAnalyticsService) CommunityStats(ctx context.Context, days int) (*models.CommunityStats, error) {
	days = windowDays(days)
	stats, err := s.Community.Stats(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}

// Dashboard assembles every aggregate into the comprehensive HQ view.
func (s *DefaultAnalyticsService) Dashboard(ctx context.Context, county string) (*models.Dashboard, error) {
	users, err := s.AccountStats(ctx, county)
	if err != nil {
		return nil, err
	}
	weather, err := s.WeatherStats(ctx, county, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	observations, err := s.ObservationStats(ctx, county, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	pests, err := s.PestDiseaseStats(ctx, county, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	alerts, err := s.AlertStats(ctx, county, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	community, err := s.CommunityStats(ctx, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{
		Users:        *users,
		Weather:      *weather,
		Observations: *observations,
		PestDisease:  *pests,
		Alerts:       *alerts,
		Community:    *community,
		GeneratedAt:  s.now().Format(time.RFC3339),
	}, nil
}
