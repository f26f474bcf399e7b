package models

import "time"

// Notification types.
const (
	NotificationTypeAlert     = "alert"
	NotificationTypeAdvisory  = "advisory"
	NotificationTypeMessage   = "message"
	NotificationTypeSystem    = "system"
	NotificationTypeCommunity = "community"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Notification is the in-app record of a message delivered to one account.
// It is created unconditionally on dispatch; only the read and delivery
// flags are mutated afterwards.
type Notification struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	Type      string         `json:"type"`
	Priority  string         `json:"priority"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`

	IsRead bool       `json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	SentViaPush bool `json:"sent_via_push"`
	SentViaSMS  bool `json:"sent_via_sms"`

	CreatedAt time.Time `json:"created_at"`
}
