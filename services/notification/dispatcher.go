// Package notification fans messages out to accounts: one in-app record per
// recipient, plus best-effort push and SMS delivery.
package notification

import (
	"context"
	"fmt"

	userRepo "croppulse/database/repository/user"
	"croppulse/models"
	"croppulse/services/gateway"
	"croppulse/utils"

	"go.uber.org/zap"
)

// Message is one notification to fan out to a set of accounts.
type Message struct {
	Type     string
	Priority string
	Title    string
	Body     string
	Data     map[string]any
	// SendSMS requests SMS delivery on top of push. Callers gate it on
	// severity; the dispatcher still honors each account's opt-out.
	SendSMS bool
}

// Dispatcher delivers a message to many accounts at once.
type Dispatcher interface {
	// Dispatch creates one notification record per account and attempts
	// push and SMS delivery. Channel failures are logged, never returned;
	// the error covers only the record creation. Returns the number of
	// records created.
	Dispatch(ctx context.Context, accounts []*models.Account, msg Message) (int, error)
}

// DefaultDispatcher is the production implementation.
type DefaultDispatcher struct {
	NotifRepo userRepo.NotificationRepository
	Push      gateway.PushGateway
	SMS       gateway.SMSGateway
}

// NewDefaultDispatcher wires the dispatcher; gateways may be nil, in which
// case the corresponding channel is skipped.
func NewDefaultDispatcher(notifRepo userRepo.NotificationRepository, push gateway.PushGateway, sms gateway.SMSGateway) *DefaultDispatcher {
	return &DefaultDispatcher{NotifRepo: notifRepo, Push: push, SMS: sms}
}

func (d *DefaultDispatcher) Dispatch(ctx context.Context, accounts []*models.Account, msg Message) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}
	logger := utils.GetLogger()

	// The in-app record is created for every account regardless of channel
	// preferences; the record is the source of truth, delivery is extra.
	notifs := make([]*models.Notification, 0, len(accounts))
	for _, acct := range accounts {
		notifs = append(notifs, &models.Notification{
			AccountID: acct.ID,
			Type:      msg.Type,
			Priority:  msg.Priority,
			Title:     msg.Title,
			Message:   msg.Body,
			Data:      msg.Data,
		})
	}
	created, err := d.NotifRepo.BulkCreate(ctx, notifs)
	if err != nil {
		return 0, fmt.Errorf("create notification records: %w", err)
	}

	// notifs[i] is the record for accounts[i]; pairing by index keeps the
	// delivery flags correct even when an account appears twice.
	d.dispatchPush(ctx, accounts, notifs, msg, logger)
	if msg.SendSMS {
		d.dispatchSMS(ctx, accounts, notifs, msg, logger)
	}
	return created, nil
}

func (d *DefaultDispatcher) dispatchPush(ctx context.Context, accounts []*models.Account, notifs []*models.Notification, msg Message, logger *zap.Logger) {
	if d.Push == nil {
		return
	}
	var tokens []string
	var ids []string
	for i, acct := range accounts {
		if !acct.ReceivePush || acct.FCMToken == "" {
			continue
		}
		tokens = append(tokens, acct.FCMToken)
		ids = append(ids, notifs[i].ID)
	}
	if len(tokens) == 0 {
		return
	}

	result, err := d.Push.SendMulticast(ctx, tokens, msg.Title, msg.Body, stringifyData(msg.Data))
	if err != nil {
		logger.Error("push fan-out failed", zap.Int("targets", len(tokens)), zap.Error(err))
		return
	}
	logger.Info("push fan-out complete",
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailureCount))
	if result.SuccessCount == 0 {
		return
	}
	if err := d.NotifRepo.MarkSentViaPush(ctx, ids); err != nil {
		logger.Warn("failed to flag push delivery", zap.Error(err))
	}
}

func (d *DefaultDispatcher) dispatchSMS(ctx context.Context, accounts []*models.Account, notifs []*models.Notification, msg Message, logger *zap.Logger) {
	if d.SMS == nil {
		return
	}
	var phones []string
	idsByPhone := map[string][]string{}
	for i, acct := range accounts {
		if !acct.ReceiveSMS || acct.PhoneNumber == "" {
			continue
		}
		phones = append(phones, acct.PhoneNumber)
		idsByPhone[acct.PhoneNumber] = append(idsByPhone[acct.PhoneNumber], notifs[i].ID)
	}
	if len(phones) == 0 {
		return
	}

	body := msg.Title + ": " + msg.Body
	result, err := d.SMS.SendBulk(ctx, phones, body)
	if err != nil {
		logger.Error("SMS fan-out failed", zap.Int("targets", len(phones)), zap.Error(err))
		return
	}
	logger.Info("SMS fan-out complete",
		zap.Int("success", len(result.Successful)),
		zap.Int("failed", len(result.Failed)))

	var ids []string
	for _, phone := range result.Successful {
		queue := idsByPhone[phone]
		if len(queue) == 0 {
			continue
		}
		ids = append(ids, queue[0])
		idsByPhone[phone] = queue[1:]
	}
	if err := d.NotifRepo.MarkSentViaSMS(ctx, ids); err != nil {
		logger.Warn("failed to flag SMS delivery", zap.Error(err))
	}
}

func stringifyData(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}
