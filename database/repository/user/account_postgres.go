package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"croppulse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAccountRepo implements AccountRepository on Postgres.
type PostgresAccountRepo struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepo creates an account repository backed by the pool.
func NewPostgresAccountRepo(db *pgxpool.Pool) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

const accountColumns = `
	id, phone_number, email, full_name, role, password_hash,
	county, subcounty, ward, village,
	is_verified, verification_code, code_issued_at,
	language, receive_sms, receive_push, fcm_token,
	is_active, created_at, updated_at, last_login`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.PhoneNumber, &a.Email, &a.FullName, &a.Role, &a.PasswordHash,
		&a.County, &a.Subcounty, &a.Ward, &a.Village,
		&a.IsVerified, &a.VerificationCode, &a.CodeIssuedAt,
		&a.Language, &a.ReceiveSMS, &a.ReceivePush, &a.FCMToken,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

func scanAccounts(rows pgx.Rows) ([]*models.Account, error) {
	defer rows.Close()
	var out []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAccountRepo) Create(ctx context.Context, acct *models.Account) error {
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	acct.CreatedAt = now
	acct.UpdatedAt = now

	query := `
		INSERT INTO accounts (
			id, phone_number, email, full_name, role, password_hash,
			county, subcounty, ward, village,
			is_verified, verification_code, code_issued_at,
			language, receive_sms, receive_push, fcm_token,
			is_active, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,$17,$18,$19,$20
		)`
	_, err := r.db.Exec(ctx, query,
		acct.ID, acct.PhoneNumber, acct.Email, acct.FullName, acct.Role, acct.PasswordHash,
		acct.County, acct.Subcounty, acct.Ward, acct.Village,
		acct.IsVerified, acct.VerificationCode, acct.CodeIssuedAt,
		acct.Language, acct.ReceiveSMS, acct.ReceivePush, acct.FCMToken,
		acct.IsActive, acct.CreatedAt, acct.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePhone
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1`
	acct, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil || acct == nil {
		return acct, err
	}
	if err := r.attachProfile(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *PostgresAccountRepo) GetByPhone(ctx context.Context, phone string) (*models.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE phone_number = $1`
	acct, err := scanAccount(r.db.QueryRow(ctx, query, phone))
	if err != nil || acct == nil {
		return acct, err
	}
	if err := r.attachProfile(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *PostgresAccountRepo) attachProfile(ctx context.Context, acct *models.Account) error {
	switch acct.Role {
	case models.RoleFarmer:
		query := `
			SELECT account_id, farm_name, farm_size_hectares, primary_crop, secondary_crops,
				latitude, longitude, years_of_experience, farming_type,
				has_irrigation, has_greenhouse, notes, created_at, updated_at
			FROM farmer_profiles WHERE account_id = $1`
		var p models.FarmerProfile
		err := r.db.QueryRow(ctx, query, acct.ID).Scan(
			&p.AccountID, &p.FarmName, &p.FarmSizeHectares, &p.PrimaryCrop, &p.SecondaryCrops,
			&p.Latitude, &p.Longitude, &p.YearsOfExperience, &p.FarmingType,
			&p.HasIrrigation, &p.HasGreenhouse, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load farmer profile: %w", err)
		}
		acct.FarmerProfile = &p
	case models.RoleFieldOfficer:
		query := `
			SELECT account_id, employee_id, assigned_counties, assigned_subcounties,
				supervisor_id, coverage_radius_km, created_at, updated_at
			FROM field_officer_profiles WHERE account_id = $1`
		var p models.FieldOfficerProfile
		err := r.db.QueryRow(ctx, query, acct.ID).Scan(
			&p.AccountID, &p.EmployeeID, &p.AssignedCounties, &p.AssignedSubcounties,
			&p.SupervisorID, &p.CoverageRadiusKM, &p.CreatedAt, &p.UpdatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load field officer profile: %w", err)
		}
		acct.FieldOfficerProfile = &p
	}
	return nil
}

func (r *PostgresAccountRepo) UpdateProfile(ctx context.Context, acct *models.Account) error {
	query := `
		UPDATE accounts SET
			email = $2, full_name = $3,
			county = $4, subcounty = $5, ward = $6, village = $7,
			language = $8, receive_sms = $9, receive_push = $10,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		acct.ID, acct.Email, acct.FullName,
		acct.County, acct.Subcounty, acct.Ward, acct.Village,
		acct.Language, acct.ReceiveSMS, acct.ReceivePush,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET fcm_token = $2, updated_at = NOW() WHERE id = $1`,
		id, token)
	if err != nil {
		return fmt.Errorf("update fcm token: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET last_login = $2 WHERE id = $1`,
		id, at)
	if err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) SetVerificationCode(ctx context.Context, id, code string, issuedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET verification_code = $2, code_issued_at = $3, updated_at = NOW() WHERE id = $1`,
		id, code, issuedAt)
	if err != nil {
		return fmt.Errorf("set verification code: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) ConsumeVerificationCode(ctx context.Context, id, code string) (bool, error) {
	// Single compare-and-swap so two concurrent verify calls cannot both
	// succeed on the same code.
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET is_verified = TRUE, verification_code = '', code_issued_at = NULL, updated_at = NOW()
		WHERE id = $1 AND verification_code <> '' AND verification_code = $2`,
		id, code)
	if err != nil {
		return false, fmt.Errorf("consume verification code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresAccountRepo) UpsertFarmerProfile(ctx context.Context, p *models.FarmerProfile) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO farmer_profiles (
			account_id, farm_name, farm_size_hectares, primary_crop, secondary_crops,
			latitude, longitude, years_of_experience, farming_type,
			has_irrigation, has_greenhouse, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)
		ON CONFLICT (account_id) DO UPDATE SET
			farm_name = EXCLUDED.farm_name,
			farm_size_hectares = EXCLUDED.farm_size_hectares,
			primary_crop = EXCLUDED.primary_crop,
			secondary_crops = EXCLUDED.secondary_crops,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			years_of_experience = EXCLUDED.years_of_experience,
			farming_type = EXCLUDED.farming_type,
			has_irrigation = EXCLUDED.has_irrigation,
			has_greenhouse = EXCLUDED.has_greenhouse,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		p.AccountID, p.FarmName, p.FarmSizeHectares, p.PrimaryCrop, p.SecondaryCrops,
		p.Latitude, p.Longitude, p.YearsOfExperience, p.FarmingType,
		p.HasIrrigation, p.HasGreenhouse, p.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("upsert farmer profile: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) UpsertFieldOfficerProfile(ctx context.Context, p *models.FieldOfficerProfile) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO field_officer_profiles (
			account_id, employee_id, assigned_counties, assigned_subcounties,
			supervisor_id, coverage_radius_km, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		ON CONFLICT (account_id) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			assigned_counties = EXCLUDED.assigned_counties,
			assigned_subcounties = EXCLUDED.assigned_subcounties,
			supervisor_id = EXCLUDED.supervisor_id,
			coverage_radius_km = EXCLUDED.coverage_radius_km,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		p.AccountID, p.EmployeeID, p.AssignedCounties, p.AssignedSubcounties,
		p.SupervisorID, p.CoverageRadiusKM, now,
	)
	if err != nil {
		return fmt.Errorf("upsert field officer profile: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) ListActiveByCounties(ctx context.Context, counties []string) ([]*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts WHERE is_active AND county = ANY($1) ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, counties)
	if err != nil {
		return nil, fmt.Errorf("list accounts by county: %w", err)
	}
	return scanAccounts(rows)
}

func (r *PostgresAccountRepo) ListActiveByRolesAndCounty(ctx context.Context, roles []models.Role, county string) ([]*models.Account, error) {
	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}
	query := `SELECT` + accountColumns + `
		FROM accounts WHERE is_active AND role = ANY($1) AND county = $2 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, roleNames, county)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role and county: %w", err)
	}
	return scanAccounts(rows)
}

func (r *PostgresAccountRepo) ListActiveByRole(ctx context.Context, role models.Role) ([]*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts WHERE is_active AND role = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	return scanAccounts(rows)
}

func (r *PostgresAccountRepo) List(ctx context.Context, role models.Role, limit, offset int) ([]*models.Account, int, error) {
	var (
		total int
		err   error
	)
	if role != "" {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, string(role)).Scan(&total)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	var rows pgx.Rows
	if role != "" {
		query := `SELECT` + accountColumns + `
			FROM accounts WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.db.Query(ctx, query, string(role), limit, offset)
	} else {
		query := `SELECT` + accountColumns + `
			FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.db.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
