package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rcamargo/meter-reading-api/internal/db"
)

// ErrNotFound is returned when a measure lookup matches no row.
var ErrNotFound = errors.New("measure not found")

// Repository handles database operations for measures.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a freshly created measure.
func (r *Repository) Insert(ctx context.Context, m *db.Measure) error {
	query := `
		INSERT INTO measure (
			measure_uuid, customer_code, measure_datetime, measure_type,
			has_confirmed, measure_value, image_file, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		m.MeasureUUID,
		m.CustomerCode,
		m.MeasureDatetime,
		m.MeasureType,
		m.HasConfirmed,
		m.MeasureValue,
		m.ImageFile,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert measure: %w", err)
	}

	return nil
}

// GetByUUID returns a single measure or ErrNotFound.
func (r *Repository) GetByUUID(ctx context.Context, measureUUID uuid.UUID) (*db.Measure, error) {
	query := `
		SELECT measure_uuid, customer_code, measure_datetime, measure_type,
		       has_confirmed, measure_value, image_file, created_at, updated_at
		FROM measure
		WHERE measure_uuid = $1
	`

	var m db.Measure
	err := r.pool.QueryRow(ctx, query, measureUUID).Scan(
		&m.MeasureUUID,
		&m.CustomerCode,
		&m.MeasureDatetime,
		&m.MeasureType,
		&m.HasConfirmed,
		&m.MeasureValue,
		&m.ImageFile,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query measure: %w", err)
	}

	return &m, nil
}

// ListByCustomer returns all measures for a customer, newest first,
// optionally filtered by meter type.
func (r *Repository) ListByCustomer(ctx context.Context, customerCode string, measureType *db.MeasureType) ([]db.Measure, error) {
	query := `
		SELECT measure_uuid, customer_code, measure_datetime, measure_type,
		       has_confirmed, measure_value, image_file, created_at, updated_at
		FROM measure
		WHERE customer_code = $1
	`
	args := []any{customerCode}

	if measureType != nil {
		query += ` AND measure_type = $2`
		args = append(args, *measureType)
	}
	query += ` ORDER BY measure_datetime DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query measures: %w", err)
	}
	defer rows.Close()

	var measures []db.Measure
	for rows.Next() {
		var m db.Measure
		if err := rows.Scan(
			&m.MeasureUUID,
			&m.CustomerCode,
			&m.MeasureDatetime,
			&m.MeasureType,
			&m.HasConfirmed,
			&m.MeasureValue,
			&m.ImageFile,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan measure: %w", err)
		}
		measures = append(measures, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return measures, nil
}

// Confirm applies the human-confirmed value in a single atomic statement.
// The has_confirmed guard makes two concurrent confirmations race-safe:
// exactly one of them reports an affected row. Returns the number of rows
// updated.
func (r *Repository) Confirm(ctx context.Context, measureUUID uuid.UUID, confirmedValue int64) (int64, error) {
	query := `
		UPDATE measure
		SET measure_value = $2, has_confirmed = TRUE, updated_at = $3
		WHERE measure_uuid = $1 AND has_confirmed = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, measureUUID, confirmedValue, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to confirm measure: %w", err)
	}

	return tag.RowsAffected(), nil
}

// RecentValues returns the most recent reading values for a customer and
// meter type, newest first. Used for the plausibility advisory.
func (r *Repository) RecentValues(ctx context.Context, customerCode string, measureType db.MeasureType, limit int) ([]int64, error) {
	query := `
		SELECT measure_value
		FROM measure
		WHERE customer_code = $1 AND measure_type = $2
		ORDER BY measure_datetime DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, customerCode, measureType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent values: %w", err)
	}
	defer rows.Close()

	var values []int64
	for rows.Next() {
		var value int64
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return values, nil
}
