package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/domain"
)

// runTimeLayout keeps a fixed width so created_at sorts as text.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLitePlanRunRepo implements PlanRunRepo using a SQLite database.
type SQLitePlanRunRepo struct {
	db db.DBTX
}

// NewSQLitePlanRunRepo creates a new SQLitePlanRunRepo.
func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	query := `INSERT INTO plan_runs (id, profile_id, total_duration_sec, hearts_ml, plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.ProfileID,
		run.TotalDurationSec,
		run.HeartsMl,
		string(run.Plan),
		run.CreatedAt.Format(runTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

// ListByProfile returns the newest runs first. A limit <= 0 returns all.
func (r *SQLitePlanRunRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, profile_id, total_duration_sec, hearts_ml, plan, created_at
		FROM plan_runs WHERE profile_id = ? ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		var run domain.PlanRun
		var plan, createdAtStr string
		if err := rows.Scan(&run.ID, &run.ProfileID, &run.TotalDurationSec, &run.HeartsMl, &plan, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning plan run: %w", err)
		}
		run.Plan = []byte(plan)
		if run.CreatedAt, err = time.Parse(runTimeLayout, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan runs: %w", err)
	}
	return runs, nil
}
