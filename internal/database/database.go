package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so every entrypoint can run this at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analysis_history (
			id UUID PRIMARY KEY,
			analysis_date TIMESTAMPTZ NOT NULL,
			file_name VARCHAR(500),
			transaction_count INT NOT NULL,
			subscription_count INT NOT NULL,
			monthly_total NUMERIC(15,2) DEFAULT 0,
			annual_projection NUMERIC(15,2) DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_date ON analysis_history (analysis_date)`,
		`CREATE TABLE IF NOT EXISTS subscription_history (
			id UUID PRIMARY KEY,
			analysis_id UUID NOT NULL REFERENCES analysis_history (id) ON DELETE CASCADE,
			subscription_id UUID NOT NULL,
			service_name VARCHAR(200) NOT NULL,
			monthly_amount NUMERIC(15,2) DEFAULT 0,
			last_amount NUMERIC(15,2) DEFAULT 0,
			billing_cycle VARCHAR(50) NOT NULL,
			status VARCHAR(50) NOT NULL,
			first_detected_date DATE,
			last_charge_date DATE,
			next_charge_date DATE,
			transaction_count INT DEFAULT 0,
			total_spent NUMERIC(15,2) DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_service_name ON subscription_history (service_name)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_id ON subscription_history (analysis_id)`,
		`CREATE TABLE IF NOT EXISTS subscription_changes (
			id BIGSERIAL PRIMARY KEY,
			subscription_id UUID NOT NULL,
			service_name VARCHAR(200) NOT NULL,
			change_type VARCHAR(50) NOT NULL,
			old_value VARCHAR(500),
			new_value VARCHAR(500),
			change_date TIMESTAMPTZ DEFAULT NOW(),
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_subscription_id ON subscription_changes (subscription_id)`,
		`CREATE INDEX IF NOT EXISTS idx_change_date ON subscription_changes (change_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	return nil
}
