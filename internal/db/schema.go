package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the measure table if needed, so the service can
// start against an empty database without a migration step.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS measure (
	measure_uuid UUID PRIMARY KEY,
	customer_code VARCHAR(36) NOT NULL,
	measure_datetime TIMESTAMPTZ NOT NULL,
	measure_type VARCHAR(5) NOT NULL,
	has_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	measure_value BIGINT NOT NULL,
	image_file TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_measure_customer_code ON measure(customer_code);`

	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
