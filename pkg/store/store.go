// Package store holds the process-wide snapshot of device state and exposes
// the verb-level mutations UI surfaces call. The snapshot is replaced
// wholesale on every successful mutation, never edited in place, so readers
// mid-iteration never observe a torn state.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/registry"
)

// Update event types
const (
	UpdateRefresh       = "refresh"
	UpdateDeviceChanged = "device_changed"
)

// Update is published to subscribers whenever the snapshot changes.
type Update struct {
	Type      string         `json:"type"`
	Device    *device.Device `json:"device,omitempty"` // set for device_changed
	Timestamp time.Time      `json:"timestamp"`
}

// Store mirrors the registry into an immutable snapshot and provides the
// three intent verbs. It is safe for concurrent use.
type Store struct {
	registry *registry.Registry

	mu      sync.RWMutex
	devices []device.Device
	loading bool
	err     error

	subMu sync.Mutex
	subs  map[chan Update]struct{}
}

// New creates a Store over the given registry. The snapshot is empty until
// the first Refresh.
func New(reg *registry.Registry) *Store {
	return &Store{
		registry: reg,
		subs:     make(map[chan Update]struct{}),
	}
}

// Refresh re-fetches the full device list from the registry and replaces the
// snapshot. On failure the previous snapshot is kept and Err reports the
// failure.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	devices, err := s.registry.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		log.Error().Err(err).Msg("failed to refresh devices")
		return err
	}
	s.devices = devices
	s.err = nil
	s.mu.Unlock()

	s.publish(Update{Type: UpdateRefresh, Timestamp: time.Now()})
	return nil
}

// Devices returns the current snapshot. The returned slice is immutable by
// convention; callers must not modify it.
func (s *Store) Devices() []device.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devices
}

// DevicesByType filters the snapshot by device type.
func (s *Store) DevicesByType(deviceType string) []device.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []device.Device
	for _, d := range s.devices {
		if d.Type == deviceType {
			out = append(out, d)
		}
	}
	return out
}

// DeviceByID looks a device up in the snapshot.
func (s *Store) DeviceByID(id string) (device.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.devices {
		if d.ID == id {
			return d, true
		}
	}
	return device.Device{}, false
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error from the last failed refresh, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ToggleLight flips a light between on and off.
func (s *Store) ToggleLight(ctx context.Context, id string) (device.Device, error) {
	current, err := s.typed(ctx, id, device.TypeLight)
	if err != nil {
		return device.Device{}, err
	}

	newStatus := device.StatusOn
	if current.Status == device.StatusOn {
		newStatus = device.StatusOff
	}

	updated, err := s.registry.Update(ctx, id, newStatus, nil)
	if err != nil {
		return device.Device{}, err
	}

	s.replace(updated)
	log.Info().Str("device", updated.Name).Str("status", updated.Status).Msg("light toggled")
	return updated, nil
}

// SetThermostat sets a thermostat's target temperature and forces it on.
func (s *Store) SetThermostat(ctx context.Context, id string, temperature int) (device.Device, error) {
	if _, err := s.typed(ctx, id, device.TypeThermostat); err != nil {
		return device.Device{}, err
	}

	updated, err := s.registry.Update(ctx, id, device.StatusOn, map[string]any{
		"temperature": temperature,
	})
	if err != nil {
		return device.Device{}, err
	}

	s.replace(updated)
	log.Info().Str("device", updated.Name).Int("temperature", temperature).Msg("thermostat set")
	return updated, nil
}

// ToggleLock flips a lock between locked and unlocked.
func (s *Store) ToggleLock(ctx context.Context, id string) (device.Device, error) {
	current, err := s.typed(ctx, id, device.TypeLock)
	if err != nil {
		return device.Device{}, err
	}

	newStatus := device.StatusLocked
	if current.Status == device.StatusLocked {
		newStatus = device.StatusUnlocked
	}

	updated, err := s.registry.Update(ctx, id, newStatus, nil)
	if err != nil {
		return device.Device{}, err
	}

	s.replace(updated)
	log.Info().Str("device", updated.Name).Str("status", updated.Status).Msg("lock toggled")
	return updated, nil
}

// Subscribe returns a channel receiving snapshot updates.
func (s *Store) Subscribe() chan Update {
	ch := make(chan Update, 16)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.subMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.subMu.Unlock()
}

// typed fetches the device and checks its type, distinguishing an unknown id
// from a verb applied to the wrong device type.
func (s *Store) typed(ctx context.Context, id, wantType string) (device.Device, error) {
	d, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return device.Device{}, err
	}
	if d.Type != wantType {
		return device.Device{}, device.ErrWrongType
	}
	return d, nil
}

// replace swaps exactly one record into a fresh copy of the snapshot.
func (s *Store) replace(updated device.Device) {
	s.mu.Lock()
	next := make([]device.Device, len(s.devices))
	copy(next, s.devices)
	for i := range next {
		if next[i].ID == updated.ID {
			next[i] = updated
			break
		}
	}
	s.devices = next
	s.mu.Unlock()

	s.publish(Update{Type: UpdateDeviceChanged, Device: &updated, Timestamp: time.Now()})
}

func (s *Store) publish(u Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- u:
		default:
			// Slow subscribers drop updates rather than block mutations
		}
	}
}

// IsNotFound reports whether err is a missing-device condition callers treat
// as a no-op.
func IsNotFound(err error) bool {
	return errors.Is(err, device.ErrNotFound) || errors.Is(err, device.ErrWrongType)
}
