package database

import (
	"context"
	"database/sql"
)

// Statements are written with ? placeholders and rebound for the driver.

func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()
	return db.ExecContext(ctx, db.Rebind(query), args...)
}

func (db *DB) get(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()
	return db.GetContext(ctx, dest, db.Rebind(query), args...)
}

func (db *DB) selectRows(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()
	return db.SelectContext(ctx, dest, db.Rebind(query), args...)
}
