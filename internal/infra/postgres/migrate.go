package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the tables created by Migrate.
var Tables = []string{"recommendations", "user_submissions", "insurance_products"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS recommendations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_type VARCHAR(50) NOT NULL,
		coverage_amount DECIMAL(12, 2) NOT NULL,
		term_years INTEGER,
		monthly_premium DECIMAL(8, 2) NOT NULL,
		explanation TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		age INTEGER NOT NULL,
		income DECIMAL(10, 2) NOT NULL,
		dependents INTEGER NOT NULL,
		risk_tolerance VARCHAR(20) NOT NULL,
		recommendation_id UUID REFERENCES recommendations (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS insurance_products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		type VARCHAR(50) NOT NULL,
		name VARCHAR(100) NOT NULL,
		base_rate DECIMAL(5, 4) NOT NULL,
		max_coverage DECIMAL(12, 2) NOT NULL,
		min_age INTEGER NOT NULL,
		max_age INTEGER NOT NULL,
		term_options VARCHAR(100),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// backs the ON CONFLICT (type, name) of catalog upserts
	`CREATE UNIQUE INDEX IF NOT EXISTS insurance_products_type_name_idx ON insurance_products (type, name)`,
	`CREATE INDEX IF NOT EXISTS user_submissions_recommendation_id_idx ON user_submissions (recommendation_id)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
