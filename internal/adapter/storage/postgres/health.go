package postgres

import (
	"context"
	"errors"
)

// HealthCheck implements ports.HealthChecker for PostgreSQL. A reachable
// database without the lending schema reports unhealthy.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks connectivity and that the loans table exists.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var migrated bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('loans') IS NOT NULL`).Scan(&migrated); err != nil {
		return err
	}
	if !migrated {
		return errors.New("lending schema is not migrated")
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "postgresql"
}
