package analytics

import (
	"context"
	"fmt"
	"time"

	"croppulse/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements AnalyticsRepository on Postgres.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates an analytics repository backed by the pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func scanBuckets(rows pgx.Rows) ([]models.CountByKey, error) {
	defer rows.Close()
	var out []models.CountByKey
	for rows.Next() {
		var b models.CountByKey
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) AccountStats(ctx context.Context, county string, newSince time.Time) (*models.AccountStats, error) {
	s := &models.AccountStats{County: county}

	where := ``
	args := []any{newSince}
	if county != "" {
		where = ` AND county = $2`
		args = append(args, county)
	}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE is_verified),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM accounts WHERE TRUE`+where, args...).
		Scan(&s.TotalUsers, &s.VerifiedUsers, &s.ActiveUsers, &s.NewUsers30Days)
	if err != nil {
		return nil, fmt.Errorf("account stats: %w", err)
	}

	byRoleWhere := ``
	byRoleArgs := []any{}
	if county != "" {
		byRoleWhere = `WHERE county = $1 `
		byRoleArgs = append(byRoleArgs, county)
	}
	rows, err := r.db.Query(ctx,
		`SELECT role, COUNT(*) FROM accounts `+byRoleWhere+`GROUP BY role ORDER BY COUNT(*) DESC`,
		byRoleArgs...)
	if err != nil {
		return nil, fmt.Errorf("accounts by role: %w", err)
	}
	if s.ByRole, err = scanBuckets(rows); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepo) WeatherStats(ctx context.Context, county string, since time.Time) (*models.WeatherStats, error) {
	s := &models.WeatherStats{County: county}

	where := ``
	args := []any{since}
	if county != "" {
		where = ` AND county = $2`
		args = append(args, county)
	}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(temperature), 0),
			COALESCE(AVG(humidity), 0),
			COALESCE(AVG(rainfall), 0)
		FROM weather_data WHERE recorded_at >= $1`+where, args...).
		Scan(&s.DataPoints, &s.AvgTemp, &s.AvgHumidity, &s.AvgRainfall)
	if err != nil {
		return nil, fmt.Errorf("weather stats: %w", err)
	}
	return s, nil
}

func (r *PostgresRepo) ObservationStats(ctx context.Context, county string, since time.Time) (*models.ObservationStats, error) {
	s := &models.ObservationStats{County: county}

	where := ``
	args := []any{since}
	if county != "" {
		where = ` AND county = $2`
		args = append(args, county)
	}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(quality_score), 0)
		FROM farm_observations WHERE created_at >= $1`+where, args...).
		Scan(&s.Total, &s.AvgQualityScore)
	if err != nil {
		return nil, fmt.Errorf("observation stats: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT observation_type, COUNT(*) FROM farm_observations
		WHERE created_at >= $1`+where+`
		GROUP BY observation_type ORDER BY COUNT(*) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("observations by type: %w", err)
	}
	if s.ByType, err = scanBuckets(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM farm_observations
		WHERE created_at >= $1`+where+`
		GROUP BY status ORDER BY COUNT(*) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("observations by status: %w", err)
	}
	if s.ByStatus, err = scanBuckets(rows); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepo) PestDiseaseStats(ctx context.Context, county string, since time.Time) (*models.PestDiseaseStats, error) {
	s := &models.PestDiseaseStats{County: county}

	where := ``
	args := []any{since}
	if county != "" {
		where = ` AND county = $2`
		args = append(args, county)
	}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_resolved)
		FROM pest_disease_reports WHERE created_at >= $1`+where, args...).
		Scan(&s.Total, &s.Unresolved)
	if err != nil {
		return nil, fmt.Errorf("pest stats: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT pest_or_disease, COUNT(*) FROM pest_disease_reports
		WHERE created_at >= $1`+where+`
		GROUP BY pest_or_disease ORDER BY COUNT(*) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("pest reports by type: %w", err)
	}
	if s.ByType, err = scanBuckets(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT severity, COUNT(*) FROM pest_disease_reports
		WHERE created_at >= $1`+where+`
		GROUP BY severity ORDER BY COUNT(*) DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("pest reports by severity: %w", err)
	}
	if s.BySeverity, err = scanBuckets(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT name, COUNT(*) FROM pest_disease_reports
		WHERE created_at >= $1`+where+`
		GROUP BY name ORDER BY COUNT(*) DESC LIMIT 10`, args...)
	if err != nil {
		return nil, fmt.Errorf("top pest issues: %w", err)
	}
	if s.TopIssues, err = scanBuckets(rows); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepo) AlertStats(ctx context.Context, county string, since time.Time, now time.Time) (*models.AlertStats, error) {
	s := &models.AlertStats{County: county}

	where := ``
	args := []any{since, models.AlertStatusActive, now}
	if county != "" {
		args = append(args, county)
		where = fmt.Sprintf(` AND $%d = ANY(counties)`, len(args))
	}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = $2 AND start_time <= $3 AND end_time >= $3),
			COALESCE(SUM(recipients_count), 0)
		FROM alerts WHERE created_at >= $1`+where, args...).
		Scan(&s.Total, &s.Active, &s.TotalRecipients)
	if err != nil {
		return nil, fmt.Errorf("alert stats: %w", err)
	}

	groupArgs := []any{since}
	groupWhere := ``
	if county != "" {
		groupArgs = append(groupArgs, county)
		groupWhere = ` AND $2 = ANY(counties)`
	}
	rows, err := r.db.Query(ctx, `
		SELECT alert_type, COUNT(*) FROM alerts
		WHERE created_at >= $1`+groupWhere+`
		GROUP BY alert_type ORDER BY COUNT(*) DESC`, groupArgs...)
	if err != nil {
		return nil, fmt.Errorf("alerts by type: %w", err)
	}
	if s.ByType, err = scanBuckets(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT severity, COUNT(*) FROM alerts
		WHERE created_at >= $1`+groupWhere+`
		GROUP BY severity ORDER BY COUNT(*) DESC`, groupArgs...)
	if err != nil {
		return nil, fmt.Errorf("alerts by severity: %w", err)
	}
	if s.BySeverity, err = scanBuckets(rows); err != nil {
		return nil, err
	}
	return s, nil
}
