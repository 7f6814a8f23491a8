package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Checker reports database liveness and schema readiness.
type Checker struct {
	db *sql.DB
}

// NewChecker constructs a Checker.
func NewChecker(db *sql.DB) *Checker {
	return &Checker{db: db}
}

// Ping verifies connectivity.
func (c *Checker) Ping(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "SELECT 1")
	return err
}

// Ready verifies every application table can be queried.
func (c *Checker) Ready(ctx context.Context) ([]string, error) {
	for _, table := range Tables {
		if _, err := c.db.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1"); err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
	}
	return append([]string(nil), Tables...), nil
}

// Backend names the storage for health payloads.
func (c *Checker) Backend() string {
	return "postgres"
}
