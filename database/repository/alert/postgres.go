package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"croppulse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements AlertRepository on Postgres.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates an alert repository backed by the pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const alertColumns = `
	id, alert_type, severity, title, message, counties, subcounties,
	start_time, end_time, status, recommendations, action_required,
	action_description, created_by, recipients_count, created_at, updated_at`

func scanAlert(row pgx.Row) (*models.Alert, error) {
	var a models.Alert
	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message, &a.Counties, &a.Subcounties,
		&a.StartTime, &a.EndTime, &a.Status, &a.Recommendations, &a.ActionRequired,
		&a.ActionDescription, &a.CreatedBy, &a.RecipientsCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan alert: %w", err)
	}
	return &a, nil
}

func (r *PostgresRepo) CreateAlert(ctx context.Context, a *models.Alert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO alerts (
			id, alert_type, severity, title, message, counties, subcounties,
			start_time, end_time, status, recommendations, action_required,
			action_description, created_by, recipients_count, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,0,$15,$15)`,
		a.ID, a.Type, a.Severity, a.Title, a.Message, a.Counties, a.Subcounties,
		a.StartTime, a.EndTime, a.Status, a.Recommendations, a.ActionRequired,
		a.ActionDescription, a.CreatedBy, now)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	query := `SELECT` + alertColumns + ` FROM alerts WHERE id = $1`
	return scanAlert(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) ListAlerts(ctx context.Context, county, status string, limit, offset int) ([]*models.Alert, int, error) {
	where := `WHERE 1=1`
	args := []any{}
	if county != "" {
		args = append(args, county)
		where += fmt.Sprintf(` AND $%d = ANY(counties)`, len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM alerts `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+alertColumns+`
		FROM alerts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) ListActiveAlerts(ctx context.Context, at time.Time) ([]*models.Alert, error) {
	query := `SELECT` + alertColumns + `
		FROM alerts WHERE status = $1 AND start_time <= $2 AND end_time >= $2
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, models.AlertStatusActive, at)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()

	var out []*models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UpdateAlertStatus(ctx context.Context, id, status string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE alerts SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}
	return nil
}

func (r *PostgresRepo) SetAlertRecipients(ctx context.Context, id string, count int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE alerts SET recipients_count = $2, updated_at = NOW() WHERE id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("set alert recipients: %w", err)
	}
	return nil
}

func (r *PostgresRepo) AlertExists(ctx context.Context, title, county string, start time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE title = $1 AND $2 = ANY(counties) AND start_time = $3
		)`, title, county, start).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check alert exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepo) ExpireAlertsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE alerts SET status = $1, updated_at = NOW()
		WHERE status = $2 AND end_time < $3`,
		models.AlertStatusExpired, models.AlertStatusActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire alerts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

const advisoryColumns = `
	id, title, message, severity, counties, recommendations,
	valid_from, valid_until, is_active, created_by, recipients_count,
	created_at, updated_at`

func scanAdvisory(row pgx.Row) (*models.Advisory, error) {
	var adv models.Advisory
	err := row.Scan(
		&adv.ID, &adv.Title, &adv.Message, &adv.Severity, &adv.Counties, &adv.Recommendations,
		&adv.ValidFrom, &adv.ValidUntil, &adv.IsActive, &adv.CreatedBy, &adv.RecipientsCount,
		&adv.CreatedAt, &adv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan advisory: %w", err)
	}
	return &adv, nil
}

func (r *PostgresRepo) CreateAdvisory(ctx context.Context, adv *models.Advisory) error {
	if adv.ID == "" {
		adv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	adv.CreatedAt = now
	adv.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO advisories (
			id, title, message, severity, counties, recommendations,
			valid_from, valid_until, is_active, created_by, recipients_count,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,0,$11,$11)`,
		adv.ID, adv.Title, adv.Message, adv.Severity, adv.Counties, adv.Recommendations,
		adv.ValidFrom, adv.ValidUntil, adv.IsActive, adv.CreatedBy, now)
	if err != nil {
		return fmt.Errorf("insert advisory: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetAdvisory(ctx context.Context, id string) (*models.Advisory, error) {
	query := `SELECT` + advisoryColumns + ` FROM advisories WHERE id = $1`
	return scanAdvisory(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) ListAdvisories(ctx context.Context, county string, activeOnly bool, at time.Time, limit, offset int) ([]*models.Advisory, int, error) {
	where := `WHERE 1=1`
	args := []any{}
	if county != "" {
		args = append(args, county)
		where += fmt.Sprintf(` AND $%d = ANY(counties)`, len(args))
	}
	if activeOnly {
		args = append(args, at)
		where += fmt.Sprintf(` AND is_active AND valid_from <= $%d AND valid_until >= $%d`, len(args), len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM advisories `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count advisories: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+advisoryColumns+`
		FROM advisories %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list advisories: %w", err)
	}
	defer rows.Close()

	var out []*models.Advisory
	for rows.Next() {
		adv, err := scanAdvisory(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, adv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) SetAdvisoryRecipients(ctx context.Context, id string, count int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE advisories SET recipients_count = $2, updated_at = NOW() WHERE id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("set advisory recipients: %w", err)
	}
	return nil
}

func (r *PostgresRepo) DeactivateAdvisory(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE advisories SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate advisory: %w", err)
	}
	return nil
}
