package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile represents a configuration profile.
type Profile struct {
	ID        int64
	Name      string
	Timezone  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileStore provides read access to profiles. Profiles are created by
// Bootstrap; there is no runtime profile management.
type ProfileStore interface {
	GetActive(ctx context.Context) (*Profile, error)
	GetByName(ctx context.Context, name string) (*Profile, error)
}

// Profiles returns a ProfileStore for this database.
func (db *DB) Profiles() ProfileStore {
	return &profileStore{db: db}
}

type profileStore struct {
	db *DB
}

func (s *profileStore) GetActive(ctx context.Context) (*Profile, error) {
	return s.scanOne(ctx, `
		SELECT id, name, timezone, is_active, created_at, updated_at
		FROM profiles WHERE is_active = 1 LIMIT 1
	`)
}

func (s *profileStore) GetByName(ctx context.Context, name string) (*Profile, error) {
	return s.scanOne(ctx, `
		SELECT id, name, timezone, is_active, created_at, updated_at
		FROM profiles WHERE name = ?
	`, name)
}

func (s *profileStore) scanOne(ctx context.Context, query string, args ...any) (*Profile, error) {
	p := &Profile{}
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Timezone, &p.IsActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	p.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return p, nil
}
