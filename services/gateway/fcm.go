package gateway

import (
	"context"
	"fmt"

	"croppulse/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCM multicast caps tokens per request.
const fcmMulticastLimit = 500

// FCMPushGateway delivers pushes through Firebase Cloud Messaging.
type FCMPushGateway struct {
	client *messaging.Client
}

// NewFCMPushGateway wraps a Firebase messaging client.
func NewFCMPushGateway(client *messaging.Client) (*FCMPushGateway, error) {
	if client == nil {
		return nil, fmt.Errorf("push gateway initialization error: messaging client is nil")
	}
	return &FCMPushGateway{client: client}, nil
}

func (g *FCMPushGateway) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	ctx, cancel := withCallTimeout(ctx)
	defer cancel()

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
	}
	if _, err := g.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// SendMulticast fans one message out to up to 500 tokens per FCM request,
// chunking larger token lists.
func (g *FCMPushGateway) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error) {
	logger := utils.GetLogger()
	result := &MulticastResult{}

	for start := 0; start < len(tokens); start += fcmMulticastLimit {
		end := start + fcmMulticastLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		msg := &messaging.MulticastMessage{
			Tokens: tokens[start:end],
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		resp, err := g.sendBatch(ctx, msg)
		if err != nil {
			return nil, fmt.Errorf("failed to send FCM multicast: %w", err)
		}
		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
		if resp.FailureCount > 0 {
			logger.Warn("FCM multicast had failures",
				zap.Int("failed", resp.FailureCount),
				zap.Int("batch_size", end-start))
		}
	}
	return result, nil
}

func (g *FCMPushGateway) sendBatch(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	ctx, cancel := withCallTimeout(ctx)
	defer cancel()
	return g.client.SendEachForMulticast(ctx, msg)
}
