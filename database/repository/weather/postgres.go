package weather

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

// PostgresRepo implements WeatherRepository on Postgres.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates a weather repository backed by the pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ListActiveStations(ctx context.Context) ([]*models.WeatherStation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, latitude, longitude, county, subcounty, elevation, is_active, created_at
		FROM weather_stations WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var out []*models.WeatherStation
	for rows.Next() {
		var s models.WeatherStation
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Latitude, &s.Longitude,
			&s.County, &s.Subcounty, &s.Elevation, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetStationByCode(ctx context.Context, code string) (*models.WeatherStation, error) {
	var s models.WeatherStation
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, latitude, longitude, county, subcounty, elevation, is_active, created_at
		FROM weather_stations WHERE code = $1`, code).
		Scan(&s.ID, &s.Name, &s.Code, &s.Latitude, &s.Longitude,
			&s.County, &s.Subcounty, &s.Elevation, &s.IsActive, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get station: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepo) CreateStation(ctx context.Context, s *models.WeatherStation) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx, `
		INSERT INTO weather_stations (id, name, code, latitude, longitude, county, subcounty, elevation, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.Name, s.Code, s.Latitude, s.Longitude, s.County, s.Subcounty, s.Elevation, s.IsActive, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

func (r *PostgresRepo) InsertData(ctx context.Context, d *models.WeatherData) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx, `
		INSERT INTO weather_data (
			id, station_id, latitude, longitude, county,
			temperature, feels_like, temp_min, temp_max, humidity, pressure,
			wind_speed, wind_direction, rainfall, clouds, visibility,
			condition, description, icon, source, recorded_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		d.ID, nullIfEmpty(d.StationID), d.Latitude, d.Longitude, d.County,
		d.Temperature, d.FeelsLike, d.TempMin, d.TempMax, d.Humidity, d.Pressure,
		d.WindSpeed, d.WindDirection, d.Rainfall, d.Clouds, d.Visibility,
		d.Condition, d.Description, d.Icon, d.Source, d.RecordedAt, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert weather data: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const weatherDataColumns = `
	id, COALESCE(station_id::text, ''), latitude, longitude, county,
	temperature, feels_like, temp_min, temp_max, humidity, pressure,
	wind_speed, wind_direction, rainfall, clouds, visibility,
	condition, description, icon, source, recorded_at, created_at`

func scanWeatherData(row pgx.Row) (*models.WeatherData, error) {
	var d models.WeatherData
	err := row.Scan(
		&d.ID, &d.StationID, &d.Latitude, &d.Longitude, &d.County,
		&d.Temperature, &d.FeelsLike, &d.TempMin, &d.TempMax, &d.Humidity, &d.Pressure,
		&d.WindSpeed, &d.WindDirection, &d.Rainfall, &d.Clouds, &d.Visibility,
		&d.Condition, &d.Description, &d.Icon, &d.Source, &d.RecordedAt, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan weather data: %w", err)
	}
	return &d, nil
}

func (r *PostgresRepo) LatestByCounty(ctx context.Context, county string) (*models.WeatherData, error) {
	query := `SELECT` + weatherDataColumns + `
		FROM weather_data WHERE county = $1 ORDER BY recorded_at DESC LIMIT 1`
	return scanWeatherData(r.db.QueryRow(ctx, query, county))
}

func (r *PostgresRepo) ListData(ctx context.Context, county string, since time.Time, limit, offset int) ([]*models.WeatherData, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM weather_data WHERE county = $1 AND recorded_at >= $2`,
		county, since).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count weather data: %w", err)
	}

	query := `SELECT` + weatherDataColumns + `
		FROM weather_data WHERE county = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, county, since, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list weather data: %w", err)
	}
	defer rows.Close()

	var out []*models.WeatherData
	for rows.Next() {
		d, err := scanWeatherData(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) UpsertForecast(ctx context.Context, f *models.WeatherForecast) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx, `
		INSERT INTO weather_forecasts (
			id, latitude, longitude, county, forecast_date,
			temp_min, temp_max, temp_avg, humidity, wind_speed, rainfall, pop,
			condition, description, icon, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)
		ON CONFLICT (county, forecast_date) DO UPDATE SET
			temp_min = EXCLUDED.temp_min,
			temp_max = EXCLUDED.temp_max,
			temp_avg = EXCLUDED.temp_avg,
			humidity = EXCLUDED.humidity,
			wind_speed = EXCLUDED.wind_speed,
			rainfall = EXCLUDED.rainfall,
			pop = EXCLUDED.pop,
			condition = EXCLUDED.condition,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			updated_at = EXCLUDED.updated_at`,
		f.ID, f.Latitude, f.Longitude, f.County, f.ForecastDate,
		f.TempMin, f.TempMax, f.TempAvg, f.Humidity, f.WindSpeed, f.Rainfall, f.POP,
		f.Condition, f.Description, f.Icon, now)
	if err != nil {
		return fmt.Errorf("upsert forecast: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListForecasts(ctx context.Context, county string, from time.Time, days int) ([]*models.WeatherForecast, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, latitude, longitude, county, forecast_date,
			temp_min, temp_max, temp_avg, humidity, wind_speed, rainfall, pop,
			condition, description, icon, created_at, updated_at
		FROM weather_forecasts
		WHERE county = $1 AND forecast_date >= $2 AND forecast_date < $3
		ORDER BY forecast_date`,
		county, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	var out []*models.WeatherForecast
	for rows.Next() {
		var f models.WeatherForecast
		if err := rows.Scan(&f.ID, &f.Latitude, &f.Longitude, &f.County, &f.ForecastDate,
			&f.TempMin, &f.TempMax, &f.TempAvg, &f.Humidity, &f.WindSpeed, &f.Rainfall, &f.POP,
			&f.Condition, &f.Description, &f.Icon, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SummarizeCounty(ctx context.Context, county string, since time.Time) (*models.WeatherSummary, error) {
	var s models.WeatherSummary
	s.County = county
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(temperature), 0), COALESCE(AVG(humidity), 0),
			COALESCE(AVG(rainfall), 0), COALESCE(AVG(wind_speed), 0), COUNT(*)
		FROM weather_data WHERE county = $1 AND recorded_at >= $2`,
		county, since).
		Scan(&s.AvgTemp, &s.AvgHumidity, &s.AvgRainfall, &s.AvgWindSpeed, &s.RecordCount)
	if err != nil {
		return nil, fmt.Errorf("summarize weather: %w", err)
	}
	return &s, nil
}
