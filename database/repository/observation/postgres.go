package observation

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

// PostgresRepo implements ObservationRepository on Postgres.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates an observation repository backed by the pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const observationColumns = `
	id, account_id, observation_type, title, description,
	latitude, longitude, county, location_description, image_count,
	temperature, rainfall, status, COALESCE(verified_by::text, ''), verified_at,
	verification_notes, quality_score, is_public, created_at, updated_at`

func scanObservation(row pgx.Row) (*models.FarmObservation, error) {
	var o models.FarmObservation
	err := row.Scan(
		&o.ID, &o.AccountID, &o.Type, &o.Title, &o.Description,
		&o.Latitude, &o.Longitude, &o.County, &o.LocationDescription, &o.ImageCount,
		&o.Temperature, &o.Rainfall, &o.Status, &o.VerifiedBy, &o.VerifiedAt,
		&o.VerificationNotes, &o.QualityScore, &o.IsPublic, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan observation: %w", err)
	}
	return &o, nil
}

func (r *PostgresRepo) CreateObservation(ctx context.Context, o *models.FarmObservation) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO farm_observations (
			id, account_id, observation_type, title, description,
			latitude, longitude, county, location_description, image_count,
			temperature, rainfall, status, verification_notes, quality_score,
			is_public, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$17)`,
		o.ID, o.AccountID, o.Type, o.Title, o.Description,
		o.Latitude, o.Longitude, o.County, o.LocationDescription, o.ImageCount,
		o.Temperature, o.Rainfall, o.Status, o.VerificationNotes, o.QualityScore,
		o.IsPublic, now)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetObservation(ctx context.Context, id string) (*models.FarmObservation, error) {
	query := `SELECT` + observationColumns + ` FROM farm_observations WHERE id = $1`
	return scanObservation(r.db.QueryRow(ctx, query, id))
}

func (f ObservationFilter) clause() (string, []any) {
	where := `WHERE 1=1`
	args := []any{}
	if f.AccountID != "" {
		args = append(args, f.AccountID)
		where += fmt.Sprintf(` AND account_id = $%d`, len(args))
	}
	if f.County != "" {
		args = append(args, f.County)
		where += fmt.Sprintf(` AND county = $%d`, len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND observation_type = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if f.PublicOnly {
		where += ` AND is_public`
	}
	if !f.Since.IsZero() {
		args = append(args, f.Since)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	return where, args
}

func (r *PostgresRepo) ListObservations(ctx context.Context, f ObservationFilter, limit, offset int) ([]*models.FarmObservation, int, error) {
	where, args := f.clause()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM farm_observations `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count observations: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+observationColumns+`
		FROM farm_observations %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var out []*models.FarmObservation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) SetVerification(ctx context.Context, id, status, verifiedBy, notes string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE farm_observations
		SET status = $2, verified_by = $3, verified_at = $4, verification_notes = $5, updated_at = NOW()
		WHERE id = $1`,
		id, status, verifiedBy, at, notes)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}
	return nil
}

const reportColumns = `
	id, account_id, name, pest_or_disease, affected_crop, severity,
	symptoms, affected_area, latitude, longitude, county,
	control_measures_taken, requires_assistance, is_resolved, resolved_at,
	created_at, updated_at`

func scanReport(row pgx.Row) (*models.PestDiseaseReport, error) {
	var rep models.PestDiseaseReport
	err := row.Scan(
		&rep.ID, &rep.AccountID, &rep.Name, &rep.PestOrDisease, &rep.AffectedCrop, &rep.Severity,
		&rep.Symptoms, &rep.AffectedArea, &rep.Latitude, &rep.Longitude, &rep.County,
		&rep.ControlMeasuresTaken, &rep.RequiresAssistance, &rep.IsResolved, &rep.ResolvedAt,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan pest report: %w", err)
	}
	return &rep, nil
}

func (r *PostgresRepo) CreateReport(ctx context.Context, rep *models.PestDiseaseReport) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO pest_disease_reports (
			id, account_id, name, pest_or_disease, affected_crop, severity,
			symptoms, affected_area, latitude, longitude, county,
			control_measures_taken, requires_assistance, is_resolved,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,FALSE,$14,$14)`,
		rep.ID, rep.AccountID, rep.Name, rep.PestOrDisease, rep.AffectedCrop, rep.Severity,
		rep.Symptoms, rep.AffectedArea, rep.Latitude, rep.Longitude, rep.County,
		rep.ControlMeasuresTaken, rep.RequiresAssistance, now)
	if err != nil {
		return fmt.Errorf("insert pest report: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetReport(ctx context.Context, id string) (*models.PestDiseaseReport, error) {
	query := `SELECT` + reportColumns + ` FROM pest_disease_reports WHERE id = $1`
	return scanReport(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) ListReports(ctx context.Context, f ReportFilter, limit, offset int) ([]*models.PestDiseaseReport, int, error) {
	where := `WHERE 1=1`
	args := []any{}
	if f.AccountID != "" {
		args = append(args, f.AccountID)
		where += fmt.Sprintf(` AND account_id = $%d`, len(args))
	}
	if f.County != "" {
		args = append(args, f.County)
		where += fmt.Sprintf(` AND county = $%d`, len(args))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		where += fmt.Sprintf(` AND severity = $%d`, len(args))
	}
	if f.UnresolvedOnly {
		where += ` AND NOT is_resolved`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pest_disease_reports `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pest reports: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+reportColumns+`
		FROM pest_disease_reports %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pest reports: %w", err)
	}
	defer rows.Close()

	var out []*models.PestDiseaseReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) ResolveReport(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE pest_disease_reports
		SET is_resolved = TRUE, resolved_at = $2, updated_at = NOW()
		WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("resolve pest report: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Hotspots(ctx context.Context, since time.Time, minReports int) ([]*models.PestHotspot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT county, name, pest_or_disease, COUNT(*) AS reports
		FROM pest_disease_reports
		WHERE NOT is_resolved AND created_at >= $1
		GROUP BY county, name, pest_or_disease
		HAVING COUNT(*) >= $2
		ORDER BY reports DESC
		LIMIT 10`, since, minReports)
	if err != nil {
		return nil, fmt.Errorf("query hotspots: %w", err)
	}
	defer rows.Close()

	var out []*models.PestHotspot
	for rows.Next() {
		var h models.PestHotspot
		if err := rows.Scan(&h.County, &h.Name, &h.PestOrDisease, &h.Count); err != nil {
			return nil, fmt.Errorf("scan hotspot: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}
