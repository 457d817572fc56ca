package db

import (
	"context"
	"database/sql"
)

// DBTX is what the profile and plan-run repositories query through. Both a
// pooled *sql.DB and a *sql.Tx handed out by UnitOfWork satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
