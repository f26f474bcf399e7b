package alert

import (
	"context"
	"time"

	"croppulse/models"
)

// AlertRepository persists alerts and advisories.
// Lookups return (nil, nil) when nothing matches.
type AlertRepository interface {
	CreateAlert(ctx context.Context, a *models.Alert) error
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context, county, status string, limit, offset int) ([]*models.Alert, int, error)
	ListActiveAlerts(ctx context.Context, at time.Time) ([]*models.Alert, error)
	UpdateAlertStatus(ctx context.Context, id, status string) error
	SetAlertRecipients(ctx context.Context, id string, count int) error
	// AlertExists reports whether an alert with the same title, county and
	// start time is already stored. Used to dedup the periodic weather scan.
	AlertExists(ctx context.Context, title, county string, start time.Time) (bool, error)
	ExpireAlertsBefore(ctx context.Context, cutoff time.Time) (int, error)

	CreateAdvisory(ctx context.Context, adv *models.Advisory) error
	GetAdvisory(ctx context.Context, id string) (*models.Advisory, error)
	ListAdvisories(ctx context.Context, county string, activeOnly bool, at time.Time, limit, offset int) ([]*models.Advisory, int, error)
	SetAdvisoryRecipients(ctx context.Context, id string, count int) error
	DeactivateAdvisory(ctx context.Context, id string) error
}
