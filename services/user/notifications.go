package user

import (
	"context"
	"errors"

	"croppulse/models"

	"github.com/jackc/pgx/v5"
)

func (s *DefaultAccountService) Notifications(ctx context.Context, accountID string, limit, offset int) ([]*models.Notification, int, error) {
	return s.NotifRepo.ListByAccount(ctx, accountID, limit, offset)
}

func (s *DefaultAccountService) MarkNotificationRead(ctx context.Context, accountID, notificationID string) error {
	err := s.NotifRepo.MarkRead(ctx, accountID, notificationID, s.now())
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *DefaultAccountService) MarkAllNotificationsRead(ctx context.Context, accountID string) (int, error) {
	return s.NotifRepo.MarkAllRead(ctx, accountID, s.now())
}

func (s *DefaultAccountService) UnreadCount(ctx context.Context, accountID string) (int, error) {
	return s.NotifRepo.UnreadCount(ctx, accountID)
}
