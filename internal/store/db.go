package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the PostgreSQL word and event stores run against.
// A *sql.DB serves reads outside a unit of work; a *sql.Tx is passed in by
// the Transactor so writes and row locks share one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
