package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL COLLATE NOCASE,
		content    TEXT NOT NULL,
		is_active  INTEGER NOT NULL DEFAULT 0,
		applied_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name)`,

	// At most one active profile.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_active ON profiles(is_active) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id                 TEXT PRIMARY KEY,
		profile_id         TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		total_duration_sec REAL NOT NULL DEFAULT 0,
		hearts_ml          REAL NOT NULL DEFAULT 0,
		plan               TEXT NOT NULL,
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_profile ON plan_runs(profile_id, created_at)`,

	`ALTER TABLE profiles ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
