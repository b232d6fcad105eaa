package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/config"
)

// Migrate runs all database migrations. Tables are created with IF NOT EXISTS
// so a store that already carries the schema only gets its version recorded.
func (db *DB) Migrate(ctx context.Context) error {
	log.Info().Msg("Running database migrations")

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

		if err := db.Transaction(ctx, func(tx *sqlx.Tx) error {
			statements := splitSQLStatements(migration.sqlFor(db.DriverName()))
			for i, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d failed: %w", migration.Version, i+1, err)
				}
			}

			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), migration.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
			}

			return nil
		}); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
	// SQLite replaces SQL on the sqlite driver when set.
	SQLite string
}

func (m migration) sqlFor(driver string) string {
	if driver == config.DriverSQLite && m.SQLite != "" {
		return m.SQLite
	}
	return m.SQL
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	for line := range strings.SplitSeq(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS department (
				id SERIAL PRIMARY KEY,
				name VARCHAR(30) UNIQUE NOT NULL
			);

			CREATE TABLE IF NOT EXISTS role (
				id SERIAL PRIMARY KEY,
				title VARCHAR(30) UNIQUE NOT NULL,
				salary DECIMAL NOT NULL,
				department_id INTEGER NOT NULL REFERENCES department(id)
			);

			-- A deleted manager leaves their reports without one.
			CREATE TABLE IF NOT EXISTS employee (
				id SERIAL PRIMARY KEY,
				first_name VARCHAR(30) NOT NULL,
				last_name VARCHAR(30) NOT NULL,
				role_id INTEGER NOT NULL REFERENCES role(id),
				manager_id INTEGER REFERENCES employee(id) ON DELETE SET NULL
			);
		`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS department (
				id INTEGER PRIMARY KEY,
				name VARCHAR(30) UNIQUE NOT NULL
			);

			CREATE TABLE IF NOT EXISTS role (
				id INTEGER PRIMARY KEY,
				title VARCHAR(30) UNIQUE NOT NULL,
				salary DECIMAL NOT NULL,
				department_id INTEGER NOT NULL REFERENCES department(id)
			);

			CREATE TABLE IF NOT EXISTS employee (
				id INTEGER PRIMARY KEY,
				first_name VARCHAR(30) NOT NULL,
				last_name VARCHAR(30) NOT NULL,
				role_id INTEGER NOT NULL REFERENCES role(id),
				manager_id INTEGER REFERENCES employee(id) ON DELETE SET NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "lookup_indexes",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_role_department_id ON role(department_id);
			CREATE INDEX IF NOT EXISTS idx_employee_role_id ON employee(role_id);
			CREATE INDEX IF NOT EXISTS idx_employee_manager_id ON employee(manager_id);
		`,
	},
}
