package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"croppulse/models"
	"croppulse/services/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifRepo struct {
	created   []*models.Notification
	createErr error
	pushIDs   []string
	smsIDs    []string
}

func (f *fakeNotifRepo) BulkCreate(_ context.Context, notifs []*models.Notification) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, n := range notifs {
		n.ID = uuid.NewString()
		n.CreatedAt = time.Now()
	}
	f.created = append(f.created, notifs...)
	return len(notifs), nil
}

func (f *fakeNotifRepo) ListByAccount(context.Context, string, int, int) ([]*models.Notification, int, error) {
	return nil, 0, nil
}
func (f *fakeNotifRepo) MarkRead(context.Context, string, string, time.Time) error { return nil }
func (f *fakeNotifRepo) MarkAllRead(context.Context, string, time.Time) (int, error) {
	return 0, nil
}
func (f *fakeNotifRepo) UnreadCount(context.Context, string) (int, error) { return 0, nil }

func (f *fakeNotifRepo) MarkSentViaPush(_ context.Context, ids []string) error {
	f.pushIDs = append(f.pushIDs, ids...)
	return nil
}

func (f *fakeNotifRepo) MarkSentViaSMS(_ context.Context, ids []string) error {
	f.smsIDs = append(f.smsIDs, ids...)
	return nil
}

func (f *fakeNotifRepo) DeleteReadOlderThan(context.Context, time.Time) (int, error) {
	return 0, nil
}

type fakePush struct {
	err    error
	tokens []string
}

func (f *fakePush) Send(context.Context, string, string, string, map[string]string) error {
	return f.err
}

func (f *fakePush) SendMulticast(_ context.Context, tokens []string, _, _ string, _ map[string]string) (*gateway.MulticastResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tokens = append(f.tokens, tokens...)
	return &gateway.MulticastResult{SuccessCount: len(tokens)}, nil
}

type fakeBulkSMS struct {
	err    error
	phones []string
}

func (f *fakeBulkSMS) Send(context.Context, string, string) error { return f.err }

func (f *fakeBulkSMS) SendBulk(_ context.Context, phones []string, _ string) (*gateway.BulkSMSResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.phones = append(f.phones, phones...)
	return &gateway.BulkSMSResult{Successful: phones}, nil
}

func dispatchAccounts() []*models.Account {
	return []*models.Account{
		{
			ID:          "acct-push-and-sms",
			PhoneNumber: "+254700000001",
			ReceivePush: true,
			ReceiveSMS:  true,
			FCMToken:    "token-1",
		},
		{
			ID:          "acct-no-token",
			PhoneNumber: "+254700000002",
			ReceivePush: true,
			ReceiveSMS:  true,
		},
		{
			ID:          "acct-opted-out",
			PhoneNumber: "+254700000003",
			FCMToken:    "token-3",
		},
	}
}

func TestDispatchCreatesRecordForEveryAccount(t *testing.T) {
	repo := &fakeNotifRepo{}
	d := NewDefaultDispatcher(repo, &fakePush{}, &fakeBulkSMS{})

	created, err := d.Dispatch(context.Background(), dispatchAccounts(), Message{
		Type:     models.NotificationTypeAlert,
		Priority: models.PriorityHigh,
		Title:    "Flood warning",
		Body:     "Heavy rainfall expected in Kisumu",
		SendSMS:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Len(t, repo.created, 3)
	for _, n := range repo.created {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "Flood warning", n.Title)
	}
}

func TestDispatchHonorsChannelPreferences(t *testing.T) {
	repo := &fakeNotifRepo{}
	push := &fakePush{}
	sms := &fakeBulkSMS{}
	d := NewDefaultDispatcher(repo, push, sms)

	_, err := d.Dispatch(context.Background(), dispatchAccounts(), Message{
		Type:    models.NotificationTypeAlert,
		Title:   "Test",
		Body:    "Body",
		SendSMS: true,
	})
	require.NoError(t, err)

	// Push goes only to opted-in accounts with a device token.
	assert.Equal(t, []string{"token-1"}, push.tokens)
	// SMS goes only to opted-in accounts.
	assert.ElementsMatch(t, []string{"+254700000001", "+254700000002"}, sms.phones)
	assert.Len(t, repo.pushIDs, 1)
	assert.Len(t, repo.smsIDs, 2)
}

func TestDispatchFlagsEveryRecordForDuplicateAccounts(t *testing.T) {
	repo := &fakeNotifRepo{}
	d := NewDefaultDispatcher(repo, &fakePush{}, &fakeBulkSMS{})

	acct := &models.Account{
		ID:          "acct-dup",
		PhoneNumber: "+254700000009",
		ReceivePush: true,
		ReceiveSMS:  true,
		FCMToken:    "token-dup",
	}
	created, err := d.Dispatch(context.Background(), []*models.Account{acct, acct}, Message{
		Type:    models.NotificationTypeAlert,
		Title:   "Test",
		Body:    "Body",
		SendSMS: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Each record carries its own delivery flags, not just the last one.
	require.Len(t, repo.pushIDs, 2)
	require.Len(t, repo.smsIDs, 2)
	assert.NotEqual(t, repo.pushIDs[0], repo.pushIDs[1])
	assert.NotEqual(t, repo.smsIDs[0], repo.smsIDs[1])
}

func TestDispatchSkipsSMSUnlessRequested(t *testing.T) {
	repo := &fakeNotifRepo{}
	sms := &fakeBulkSMS{}
	d := NewDefaultDispatcher(repo, &fakePush{}, sms)

	_, err := d.Dispatch(context.Background(), dispatchAccounts(), Message{
		Type:  models.NotificationTypeAdvisory,
		Title: "Routine advisory",
		Body:  "Body",
	})
	require.NoError(t, err)
	assert.Empty(t, sms.phones)
}

func TestDispatchSurvivesGatewayFailures(t *testing.T) {
	repo := &fakeNotifRepo{}
	d := NewDefaultDispatcher(repo,
		&fakePush{err: errors.New("fcm unavailable")},
		&fakeBulkSMS{err: errors.New("sns unavailable")})

	created, err := d.Dispatch(context.Background(), dispatchAccounts(), Message{
		Type:    models.NotificationTypeAlert,
		Title:   "Test",
		Body:    "Body",
		SendSMS: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Empty(t, repo.pushIDs)
	assert.Empty(t, repo.smsIDs)
}

func TestDispatchFailsWhenRecordsCannotBeCreated(t *testing.T) {
	repo := &fakeNotifRepo{createErr: errors.New("db down")}
	d := NewDefaultDispatcher(repo, &fakePush{}, &fakeBulkSMS{})

	_, err := d.Dispatch(context.Background(), dispatchAccounts(), Message{Title: "x"})
	assert.Error(t, err)
}

func TestDispatchNoAccounts(t *testing.T) {
	d := NewDefaultDispatcher(&fakeNotifRepo{}, nil, nil)
	created, err := d.Dispatch(context.Background(), nil, Message{Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, created)
}
