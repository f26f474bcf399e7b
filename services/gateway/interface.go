// Package gateway wraps the external delivery and data providers behind
// small interfaces so services can be tested without network access.
package gateway

import (
	"context"
	"time"

	"croppulse/models"
)

// callTimeout bounds every outbound provider call so a hung peer cannot
// stall a request handler or queue worker.
const callTimeout = 10 * time.Second

func withCallTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// BulkSMSResult reports a bulk send: which numbers were accepted by the
// carrier gateway and which were not.
type BulkSMSResult struct {
	Successful []string
	Failed     []string
}

// SMSGateway delivers text messages to E.164 phone numbers.
type SMSGateway interface {
	Send(ctx context.Context, phone, message string) error
	SendBulk(ctx context.Context, phones []string, message string) (*BulkSMSResult, error)
}

// MulticastResult reports a multicast push delivery.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
}

// PushGateway delivers push notifications to device tokens.
type PushGateway interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error)
}

// WeatherGateway fetches live conditions from the upstream weather provider.
type WeatherGateway interface {
	Current(ctx context.Context, lat, lon float64) (*models.WeatherData, error)
	Forecast(ctx context.Context, lat, lon float64, days int) ([]*models.WeatherForecast, error)
	Events(ctx context.Context, lat, lon float64) ([]*models.WeatherEvent, error)
}

// GeocodingGateway resolves coordinates to administrative areas.
type GeocodingGateway interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.Location, error)
}
