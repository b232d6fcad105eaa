package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/config"
)

// Optimize refreshes the query planner statistics.
func (db *DB) Optimize(ctx context.Context) error {
	stmt := "ANALYZE"
	if db.DriverName() == config.DriverSQLite {
		stmt = "PRAGMA optimize"
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}

	log.Debug().Str("statement", stmt).Msg("Database optimized")
	return nil
}

// Vacuum reclaims space left behind by deleted rows.
// It cannot run inside a transaction.
func (db *DB) Vacuum(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.exec(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	log.Debug().Msg("Database vacuumed")
	return nil
}
