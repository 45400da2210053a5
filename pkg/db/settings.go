package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrSettingsNotFound = errors.New("settings not found")

// Settings holds the persisted dashboard preferences and the simulated
// registry latency knobs, consumed once at wiring time.
type Settings struct {
	ID                   int64
	ProfileID            int64
	VoiceControlEnabled  bool
	NotificationsEnabled bool
	PollingIntervalSecs  int
	ListLatencyMs        int
	OpLatencyMs          int
	UpdatedAt            time.Time
}

// SettingsStore provides dashboard settings operations.
type SettingsStore interface {
	Get(ctx context.Context, profileID int64) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}

// Settings returns a SettingsStore for this database.
func (db *DB) Settings() SettingsStore {
	return &settingsStore{db: db}
}

type settingsStore struct {
	db *DB
}

func (s *settingsStore) Get(ctx context.Context, profileID int64) (*Settings, error) {
	out := &Settings{}
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, voice_control_enabled, notifications_enabled,
		       polling_interval_secs, list_latency_ms, op_latency_ms, updated_at
		FROM settings WHERE profile_id = ?
	`, profileID).Scan(&out.ID, &out.ProfileID, &out.VoiceControlEnabled,
		&out.NotificationsEnabled, &out.PollingIntervalSecs,
		&out.ListLatencyMs, &out.OpLatencyMs, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	out.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return out, nil
}

func (s *settingsStore) Update(ctx context.Context, settings *Settings) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE settings
		SET voice_control_enabled = ?, notifications_enabled = ?,
		    polling_interval_secs = ?, list_latency_ms = ?, op_latency_ms = ?,
		    updated_at = datetime('now')
		WHERE profile_id = ?
	`, settings.VoiceControlEnabled, settings.NotificationsEnabled,
		settings.PollingIntervalSecs, settings.ListLatencyMs,
		settings.OpLatencyMs, settings.ProfileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
