package models

import "time"

// Observation types.
const (
	ObservationTypeWeather     = "weather"
	ObservationTypeCropHealth  = "crop_health"
	ObservationTypePestDisease = "pest_disease"
	ObservationTypeSoil        = "soil"
	ObservationTypeGeneral     = "general"
)

// Observation statuses.
const (
	ObservationStatusPending  = "pending"
	ObservationStatusVerified = "verified"
	ObservationStatusRejected = "rejected"
)

// FarmObservation is a crowd-sourced field observation awaiting verification
// by a field officer.
type FarmObservation struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`

	Type        string `json:"observation_type"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	County              string  `json:"county"`
	LocationDescription string  `json:"location_description,omitempty"`

	ImageCount int `json:"image_count"`

	Temperature *float64 `json:"temperature,omitempty"`
	Rainfall    *float64 `json:"rainfall,omitempty"`

	Status            string     `json:"status"`
	VerifiedBy        string     `json:"verified_by,omitempty"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	VerificationNotes string     `json:"verification_notes,omitempty"`

	QualityScore int  `json:"quality_score"`
	IsPublic     bool `json:"is_public"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pest/disease severities.
const (
	PestSeverityLow    = "low"
	PestSeverityMedium = "medium"
	PestSeverityHigh   = "high"
	PestSeveritySevere = "severe"
)

// PestDiseaseReport is a report of a pest or disease outbreak.
type PestDiseaseReport struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`

	Name          string `json:"name"`
	PestOrDisease string `json:"pest_or_disease"`
	AffectedCrop  string `json:"affected_crop"`
	Severity      string `json:"severity"`

	Symptoms     string  `json:"symptoms"`
	AffectedArea float64 `json:"affected_area"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	County    string  `json:"county"`

	ControlMeasuresTaken string `json:"control_measures_taken,omitempty"`
	RequiresAssistance   bool   `json:"requires_assistance"`

	IsResolved bool       `json:"is_resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PestHotspot is an aggregated cluster of unresolved pest/disease reports.
type PestHotspot struct {
	County        string `json:"county"`
	Name          string `json:"name"`
	PestOrDisease string `json:"pest_or_disease"`
	Count         int    `json:"count"`
}
