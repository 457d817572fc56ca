package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertProfile = `INSERT INTO profiles (id, name, content, created_at, updated_at)
	VALUES (?, ?, '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(id string) bool) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	exists := func(id string) bool {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM profiles WHERE id = ?`, id).Scan(&n))
		return n == 1
	}
	return db.NewSQLiteUnitOfWork(database), exists
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, exists := newUoW(t)

	err := uow.WithinTx(context.Background(), "test", func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertProfile, "p1", "first")
		return err
	})
	require.NoError(t, err)
	assert.True(t, exists("p1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, exists := newUoW(t)
	errBoom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), "test", func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertProfile, "p2", "second"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.False(t, exists("p2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, exists := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), "test", func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertProfile, "p3", "third")
			panic("boom")
		})
	})
	assert.False(t, exists("p3"))
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rectplan.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestWithinTx_BeginErrorCarriesOp(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	called := false
	err = db.NewSQLiteUnitOfWork(database).WithinTx(context.Background(), "apply plan", func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply plan: beginning transaction")
	assert.False(t, called)
}
