package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

const profileColumns = `id, name, notes, content, is_active, applied_at, created_at, updated_at`

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	content, err := encodeConfig(p.Config)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Notes,
		content,
		boolToInt(p.IsActive),
		nullableTimeToString(p.AppliedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting profile", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return r.scanOne(row)
}

func (r *SQLiteProfileRepo) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	return r.scanOne(row)
}

func (r *SQLiteProfileRepo) GetActive(ctx context.Context) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE is_active = 1`)
	return r.scanOne(row)
}

func (r *SQLiteProfileRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Profile, error) {
	return r.query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE substr(id, 1, length(?)) = ? ORDER BY created_at`, prefix, prefix)
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	return r.query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY name`)
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	content, err := encodeConfig(p.Config)
	if err != nil {
		return err
	}
	query := `UPDATE profiles SET name = ?, notes = ?, content = ?, applied_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Notes,
		content,
		nullableTimeToString(p.AppliedAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return wrapWriteErr("updating profile", err)
	}
	return requireAffected(res, "profile")
}

func (r *SQLiteProfileRepo) SetActive(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE profiles SET is_active = 0 WHERE is_active = 1`); err != nil {
		return fmt.Errorf("clearing active profile: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET is_active = 1, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("activating profile: %w", err)
	}
	return requireAffected(res, "profile")
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return requireAffected(res, "profile")
}

func (r *SQLiteProfileRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) scanOne(row *sql.Row) (*domain.Profile, error) {
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	return p, err
}

func scanProfile(s scanner) (*domain.Profile, error) {
	var p domain.Profile
	var content, createdAtStr, updatedAtStr string
	var appliedAtStr sql.NullString
	var active int

	if err := s.Scan(&p.ID, &p.Name, &p.Notes, &content, &active, &appliedAtStr, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	cfg, err := decodeConfig(content)
	if err != nil {
		return nil, err
	}
	p.Config = cfg
	p.IsActive = active != 0
	p.AppliedAt = parseNullableTime(appliedAtStr, time.RFC3339)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
