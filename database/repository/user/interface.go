package user

import (
	"context"
	"errors"
	"time"

	"croppulse/models"
)

// ErrDuplicatePhone is returned when a phone number is already registered.
var ErrDuplicatePhone = errors.New("phone number already registered")

// AccountRepository persists accounts and their verification state.
// Lookups return (nil, nil) when no account matches.
type AccountRepository interface {
	Create(ctx context.Context, acct *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByPhone(ctx context.Context, phone string) (*models.Account, error)

	UpdateProfile(ctx context.Context, acct *models.Account) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error

	// SetVerificationCode stamps a fresh one-time code on the account.
	SetVerificationCode(ctx context.Context, id, code string, issuedAt time.Time) error
	// ConsumeVerificationCode atomically clears the code and marks the
	// account verified iff the stored code is non-empty and matches. It
	// reports false when another call already consumed the code or the
	// submitted code no longer matches.
	ConsumeVerificationCode(ctx context.Context, id, code string) (bool, error)

	UpsertFarmerProfile(ctx context.Context, p *models.FarmerProfile) error
	UpsertFieldOfficerProfile(ctx context.Context, p *models.FieldOfficerProfile) error

	ListActiveByCounties(ctx context.Context, counties []string) ([]*models.Account, error)
	ListActiveByRolesAndCounty(ctx context.Context, roles []models.Role, county string) ([]*models.Account, error)
	ListActiveByRole(ctx context.Context, role models.Role) ([]*models.Account, error)
	List(ctx context.Context, role models.Role, limit, offset int) ([]*models.Account, int, error)
}

// NotificationRepository persists per-account notification records.
type NotificationRepository interface {
	// BulkCreate inserts the records and fills their IDs and CreatedAt,
	// returning the number created.
	BulkCreate(ctx context.Context, notifs []*models.Notification) (int, error)

	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, accountID, id string, at time.Time) error
	MarkAllRead(ctx context.Context, accountID string, at time.Time) (int, error)
	UnreadCount(ctx context.Context, accountID string) (int, error)

	MarkSentViaPush(ctx context.Context, ids []string) error
	MarkSentViaSMS(ctx context.Context, ids []string) error

	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
