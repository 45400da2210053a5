package history

import (
	"context"
	"testing"
	"time"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return NewLog(database)
}

func TestAppend_FillsIDAndTimestamp(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	err := l.Append(ctx, Event{
		DeviceID:   "light-1",
		DeviceName: "Living Room Main Light",
		EventType:  EventStatusChange,
		Status:     "on",
	})
	if err != nil {
		t.Fatal(err)
	}

	events, err := l.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID == "" {
		t.Error("expected a generated event ID")
	}
	if events[0].OccurredAt.IsZero() {
		t.Error("expected a generated timestamp")
	}
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		err := l.Append(ctx, Event{
			DeviceID:   "light-1",
			DeviceName: "Living Room Main Light",
			EventType:  EventStatusChange,
			Status:     "on",
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	events, err := l.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].OccurredAt.After(events[i-1].OccurredAt) {
			t.Fatal("events are not newest-first")
		}
	}
}

func TestByDevice_FiltersOtherDevices(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	for _, id := range []string{"light-1", "lock-1", "light-1"} {
		err := l.Append(ctx, Event{
			DeviceID:   id,
			DeviceName: id,
			EventType:  EventStatusChange,
			Status:     "on",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	events, err := l.ByDevice(ctx, "light-1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for light-1, got %d", len(events))
	}
	for _, e := range events {
		if e.DeviceID != "light-1" {
			t.Errorf("unexpected event for device %q", e.DeviceID)
		}
	}
}

func TestAppend_NormalizesOffsetsForOrdering(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	// 22:00+10 is 12:00 UTC; without normalization the "22:00" string would
	// sort after the 13:00 UTC event below.
	east := time.FixedZone("UTC+10", 10*60*60)
	earlier := time.Date(2025, 6, 1, 22, 0, 0, 0, east)
	later := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	for _, e := range []Event{
		{DeviceID: "lock-1", DeviceName: "Front Door", EventType: EventStatusChange, Status: "locked", OccurredAt: earlier},
		{DeviceID: "light-1", DeviceName: "Living Room Main Light", EventType: EventStatusChange, Status: "on", OccurredAt: later},
	} {
		if err := l.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	events, err := l.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].DeviceID != "light-1" {
		t.Errorf("expected the 13:00 UTC event first, got %q at %v", events[0].DeviceID, events[0].OccurredAt)
	}
	if !events[1].OccurredAt.Equal(earlier) {
		t.Errorf("stored instant drifted: got %v, want %v", events[1].OccurredAt, earlier)
	}
}
