package observation

import (
	"context"
	"time"

	"croppulse/models"
)

// ObservationRepository persists farm observations and pest/disease reports.
// Lookups return (nil, nil) when nothing matches.
type ObservationRepository interface {
	CreateObservation(ctx context.Context, o *models.FarmObservation) error
	GetObservation(ctx context.Context, id string) (*models.FarmObservation, error)
	ListObservations(ctx context.Context, f ObservationFilter, limit, offset int) ([]*models.FarmObservation, int, error)
	SetVerification(ctx context.Context, id, status, verifiedBy, notes string, at time.Time) error

	CreateReport(ctx context.Context, rep *models.PestDiseaseReport) error
	GetReport(ctx context.Context, id string) (*models.PestDiseaseReport, error)
	ListReports(ctx context.Context, f ReportFilter, limit, offset int) ([]*models.PestDiseaseReport, int, error)
	ResolveReport(ctx context.Context, id string, at time.Time) error
	// Hotspots clusters unresolved reports from the window by county and
	// issue, most reported first.
	Hotspots(ctx context.Context, since time.Time, minReports int) ([]*models.PestHotspot, error)
}

// ObservationFilter narrows observation listings.
type ObservationFilter struct {
	AccountID  string
	County     string
	Type       string
	Status     string
	PublicOnly bool
	Since      time.Time
}

// ReportFilter narrows pest/disease report listings.
type ReportFilter struct {
	AccountID      string
	County         string
	Severity       string
	UnresolvedOnly bool
}
