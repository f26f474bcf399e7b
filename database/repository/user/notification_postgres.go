package user

import (
	"context"
	"fmt"
	"time"

	"croppulse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNotificationRepo implements NotificationRepository on Postgres.
type PostgresNotificationRepo struct {
	db *pgxpool.Pool
}

// NewPostgresNotificationRepo creates a notification repository backed by the
// pool.
func NewPostgresNotificationRepo(db *pgxpool.Pool) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: db}
}

func (r *PostgresNotificationRepo) BulkCreate(ctx context.Context, notifs []*models.Notification) (int, error) {
	if len(notifs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for _, n := range notifs {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		n.CreatedAt = now
		batch.Queue(`
			INSERT INTO notifications (
				id, account_id, type, priority, title, message, data,
				is_read, sent_via_push, sent_via_sms, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,FALSE,FALSE,FALSE,$8)`,
			n.ID, n.AccountID, n.Type, n.Priority, n.Title, n.Message, n.Data, n.CreatedAt,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range notifs {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("insert notifications: %w", err)
		}
	}
	return len(notifs), nil
}

func (r *PostgresNotificationRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*models.Notification, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, type, priority, title, message, data,
			is_read, read_at, sent_via_push, sent_via_sms, created_at
		FROM notifications
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.AccountID, &n.Type, &n.Priority, &n.Title, &n.Message, &n.Data,
			&n.IsRead, &n.ReadAt, &n.SentViaPush, &n.SentViaSMS, &n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresNotificationRepo) MarkRead(ctx context.Context, accountID, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $3
		WHERE id = $1 AND account_id = $2 AND NOT is_read`,
		id, accountID, at)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already read or not owned by the account; treat as idempotent
		// only when the record exists.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND account_id = $2)`,
			id, accountID).Scan(&exists); err != nil {
			return fmt.Errorf("check notification: %w", err)
		}
		if !exists {
			return pgx.ErrNoRows
		}
	}
	return nil
}

func (r *PostgresNotificationRepo) MarkAllRead(ctx context.Context, accountID string, at time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $2
		WHERE account_id = $1 AND NOT is_read`,
		accountID, at)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PostgresNotificationRepo) UnreadCount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND NOT is_read`,
		accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *PostgresNotificationRepo) MarkSentViaPush(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET sent_via_push = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("mark sent via push: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepo) MarkSentViaSMS(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET sent_via_sms = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("mark sent via sms: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE is_read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
