package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a lookup matched no row or a write affected none.
var ErrNotFound = errors.New("not found")

// Kind classifies a store failure.
type Kind string

const (
	KindForeignKey Kind = "foreign_key"
	KindUnique     Kind = "unique"
	KindNotNull    Kind = "not_null"
	KindCheck      Kind = "check"
	KindTimeout    Kind = "timeout"
	KindOther      Kind = "other"
)

// StoreError is a failure reported by the store while running an operation.
type StoreError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// fail classifies err, logs it and wraps it as a *StoreError. The failure is
// returned to the caller, which decides how to surface it, so it is logged
// at warn.
func fail(op string, err error) error {
	se := &StoreError{Op: op, Kind: classify(err), Err: err}
	log.Warn().Err(err).Str("op", op).Str("kind", string(se.Kind)).Msg("Store operation failed")
	return se
}

func classify(err error) Kind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return kindForSQLState(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return kindForSQLState(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return kindForSQLite(liteErr.Code(), liteErr.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindOther
}

// kindForSQLState maps Postgres integrity constraint violations (class 23).
func kindForSQLState(code string) Kind {
	switch code {
	case "23503":
		return KindForeignKey
	case "23505":
		return KindUnique
	case "23502":
		return KindNotNull
	case "23514":
		return KindCheck
	}
	return KindOther
}

func kindForSQLite(code int, msg string) Kind {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return KindForeignKey
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return KindUnique
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return KindNotNull
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return KindCheck
	}

	// Primary result code only: fall back to the message.
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return KindForeignKey
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return KindUnique
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return KindNotNull
	case strings.Contains(msg, "CHECK constraint failed"):
		return KindCheck
	}
	return KindOther
}
