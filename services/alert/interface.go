package alert

import (
	"context"
	"time"

	alertRepo "croppulse/database/repository/alert"
	userRepo "croppulse/database/repository/user"
	weatherRepo "croppulse/database/repository/weather"
	"croppulse/models"
	"croppulse/services/gateway"
	"croppulse/services/notification"

	"github.com/jonboulle/clockwork"
)

// AlertService manages alerts and advisories and their fan-out.
type AlertService interface {
	CreateAlert(ctx context.Context, req CreateAlertRequest, createdBy string) (*models.Alert, error)
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context, county, status string, limit, offset int) ([]*models.Alert, int, error)
	ListActiveAlerts(ctx context.Context) ([]*models.Alert, error)
	CancelAlert(ctx context.Context, id string) error

	CreateAdvisory(ctx context.Context, req CreateAdvisoryRequest, createdBy string) (*models.Advisory, error)
	ListAdvisories(ctx context.Context, county string, activeOnly bool, limit, offset int) ([]*models.Advisory, int, error)
	DeactivateAdvisory(ctx context.Context, id string) error

	// ScanWeatherEvents pulls provider weather alerts for every active
	// station and raises deduplicated alerts. Returns the number raised.
	ScanWeatherEvents(ctx context.Context) (int, error)
	// ExpireStale flips active alerts whose window has passed to expired.
	ExpireStale(ctx context.Context) (int, error)
}

// DefaultAlertService is the production implementation.
type DefaultAlertService struct {
	Repo       alertRepo.AlertRepository
	Accounts   userRepo.AccountRepository
	Stations   weatherRepo.WeatherRepository
	Weather    gateway.WeatherGateway
	Dispatcher notification.Dispatcher
	Clock      clockwork.Clock
}

// CreateAlertRequest carries the fields for a new alert.
type CreateAlertRequest struct {
	Type              string    `json:"alert_type" binding:"required"`
	Severity          string    `json:"severity" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Message           string    `json:"message" binding:"required"`
	Counties          []string  `json:"counties" binding:"required,min=1"`
	Subcounties       []string  `json:"subcounties"`
	StartTime         time.Time `json:"start_time" binding:"required"`
	EndTime           time.Time `json:"end_time" binding:"required"`
	Recommendations   string    `json:"recommendations"`
	ActionRequired    bool      `json:"action_required"`
	ActionDescription string    `json:"action_description"`
	Draft             bool      `json:"draft"`
}

// CreateAdvisoryRequest carries the fields for a new advisory.
type CreateAdvisoryRequest struct {
	Title           string    `json:"title" binding:"required"`
	Message         string    `json:"message" binding:"required"`
	Severity        string    `json:"severity" binding:"required"`
	Counties        []string  `json:"counties" binding:"required,min=1"`
	Recommendations string    `json:"recommendations"`
	ValidFrom       time.Time `json:"valid_from" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
}
