package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork groups profile and plan-run writes into one SQLite transaction.
// The op label names the use case and prefixes transaction-level failures, so
// a failed commit reads "apply plan: committing transaction: ...".
type UnitOfWork interface {
	WithinTx(ctx context.Context, op string, fn func(ctx context.Context, tx DBTX) error) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx runs fn inside a transaction. Errors returned by fn pass through
// unwrapped so callers can still match repository sentinels; a panic rolls
// back and re-panics.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, op string, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return txError(op, "beginning transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, txError(op, "rolling back", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return txError(op, "committing transaction", err)
	}
	return nil
}

func txError(op, step string, err error) error {
	if op == "" {
		return fmt.Errorf("%s: %w", step, err)
	}
	return fmt.Errorf("%s: %s: %w", op, step, err)
}
