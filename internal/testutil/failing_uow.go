package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/rectplan/internal/db"
)

// FailOnNthExecUoW wraps a real SQLite transaction and makes its Nth write
// (counted from 1) return Err. Reads are never counted. Ops records the label
// of every transaction it opened so tests can assert which use case wrote.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
	Ops    []string
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, op string, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Ops = append(u.Ops, op)
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, op, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failOnNthExec struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
