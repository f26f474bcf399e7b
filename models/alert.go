package models

import "time"

// Alert types.
const (
	AlertTypeWeather  = "weather"
	AlertTypeDrought  = "drought"
	AlertTypeFlood    = "flood"
	AlertTypePest     = "pest"
	AlertTypeDisease  = "disease"
	AlertTypeAdvisory = "advisory"
	AlertTypeSystem   = "system"
)

// Alert severities.
const (
	SeverityInfo     = "info"
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert statuses.
const (
	AlertStatusDraft     = "draft"
	AlertStatusActive    = "active"
	AlertStatusExpired   = "expired"
	AlertStatusCancelled = "cancelled"
)

// Alert is a system-wide alert targeting a set of counties for a validity
// window. Creation triggers notification fan-out to accounts in the target
// counties; RecipientsCount is written once per send.
type Alert struct {
	ID       string `json:"id"`
	Type     string `json:"alert_type"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`

	Counties    []string `json:"counties"`
	Subcounties []string `json:"subcounties,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	Recommendations   string `json:"recommendations,omitempty"`
	ActionRequired    bool   `json:"action_required"`
	ActionDescription string `json:"action_description,omitempty"`

	CreatedBy       string `json:"created_by,omitempty"`
	RecipientsCount int    `json:"recipients_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the alert is in its validity window at t.
func (a *Alert) Active(t time.Time) bool {
	return a.Status == AlertStatusActive && !t.Before(a.StartTime) && !t.After(a.EndTime)
}

// Advisory severities.
const (
	AdvisorySeverityInfo      = "info"
	AdvisorySeverityWatch     = "watch"
	AdvisorySeverityWarning   = "warning"
	AdvisorySeverityEmergency = "emergency"
)

// Advisory is a weather-based agricultural advisory for a set of counties.
type Advisory struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Severity        string    `json:"severity"`
	Counties        []string  `json:"counties"`
	Recommendations string    `json:"recommendations"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	IsActive        bool      `json:"is_active"`
	CreatedBy       string    `json:"created_by,omitempty"`
	RecipientsCount int       `json:"recipients_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
