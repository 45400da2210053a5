// Package history keeps an append-only log of device activity, backing the
// dashboard's history view.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
)

// Event types
const (
	EventStatusChange = "status_change"
)

// DefaultLimit matches the dashboard history view, which shows the most
// recent 20 events.
const DefaultLimit = 20

// Event is one row of device history.
type Event struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	EventType  string    `json:"event_type"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Log provides append and query access to the device event history.
type Log struct {
	db *db.DB
}

// NewLog creates a Log over the given database.
func NewLog(database *db.DB) *Log {
	return &Log{db: database}
}

// Append stores an event. A missing ID or timestamp is filled in.
func (l *Log) Append(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	// Rows sort by string comparison of occurred_at, which is only correct
	// when every timestamp carries the same offset.
	e.OccurredAt = e.OccurredAt.UTC()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO device_events (id, device_id, device_name, event_type, status, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.DeviceID, e.DeviceName, e.EventType, e.Status,
		e.OccurredAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first. A non-positive limit
// falls back to DefaultLimit.
func (l *Log) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, device_id, device_name, event_type, status, occurred_at
		FROM device_events
		ORDER BY occurred_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.DeviceName, &e.EventType, &e.Status, &occurredAt); err != nil {
			return nil, err
		}
		e.OccurredAt, _ = time.Parse(time.RFC3339, occurredAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// ByDevice returns the newest events for one device, most recent first.
func (l *Log) ByDevice(ctx context.Context, deviceID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, device_id, device_name, event_type, status, occurred_at
		FROM device_events
		WHERE device_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.DeviceName, &e.EventType, &e.Status, &occurredAt); err != nil {
			return nil, err
		}
		e.OccurredAt, _ = time.Parse(time.RFC3339, occurredAt)
		events = append(events, e)
	}
	return events, rows.Err()
}
