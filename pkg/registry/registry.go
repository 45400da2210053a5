// Package registry holds the authoritative in-memory device catalog. It is
// the only place device records are mutated. Operations carry a simulated
// latency to model network/device round-trips; real protocol integrations
// are out of scope.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device/schema"
)

// Default simulated latencies, matching the behavior of a slow local hub.
const (
	DefaultListLatency = 500 * time.Millisecond
	DefaultOpLatency   = 300 * time.Millisecond
)

// Registry is an explicitly owned device catalog. It is seeded once at
// construction; devices are never created or deleted at runtime.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*device.Device
	order   []string

	listLatency time.Duration
	opLatency   time.Duration

	validator *schema.Validator

	// Per-device locks serialize concurrent mutations of the same id so the
	// last-write-wins race between overlapping toggles cannot interleave a
	// merge-patch mid-apply. Mutations for different ids proceed
	// independently.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLatency overrides the simulated latencies. Tests pass zero.
func WithLatency(list, op time.Duration) Option {
	return func(r *Registry) {
		r.listLatency = list
		r.opLatency = op
	}
}

// New creates a Registry seeded with the given devices.
func New(devices []device.Device, opts ...Option) *Registry {
	r := &Registry{
		devices:     make(map[string]*device.Device, len(devices)),
		order:       make([]string, 0, len(devices)),
		listLatency: DefaultListLatency,
		opLatency:   DefaultOpLatency,
		validator:   schema.NewValidator(),
		locks:       make(map[string]*sync.Mutex),
	}
	for i := range devices {
		d := devices[i].Clone()
		r.devices[d.ID] = &d
		r.order = append(r.order, d.ID)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns a copy of all devices in seed order.
func (r *Registry) List(ctx context.Context) ([]device.Device, error) {
	if err := r.wait(ctx, r.listLatency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]device.Device, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.devices[id].Clone())
	}
	return out, nil
}

// FindByType returns all devices of the given type.
func (r *Registry) FindByType(ctx context.Context, deviceType string) ([]device.Device, error) {
	if err := r.wait(ctx, r.listLatency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []device.Device
	for _, id := range r.order {
		if r.devices[id].Type == deviceType {
			out = append(out, r.devices[id].Clone())
		}
	}
	return out, nil
}

// FindByID returns a single device, or device.ErrNotFound.
func (r *Registry) FindByID(ctx context.Context, id string) (device.Device, error) {
	if err := r.wait(ctx, r.opLatency); err != nil {
		return device.Device{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return device.Device{}, device.ErrNotFound
	}
	return d.Clone(), nil
}

// Update applies a merge-patch to the device: status is replaced, dataPatch
// keys merge into the existing data map. The patch is validated against the
// device type's state schema before it is applied, and the whole update is
// atomic. Returns the updated record, or device.ErrNotFound for an unknown
// id.
//
// Updates are not cancellable: once initiated the latency elapses and the
// patch applies regardless of ctx.
func (r *Registry) Update(_ context.Context, id, status string, dataPatch map[string]any) (device.Device, error) {
	lock := r.deviceLock(id)
	lock.Lock()
	defer lock.Unlock()

	if r.opLatency > 0 {
		time.Sleep(r.opLatency)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return device.Device{}, device.ErrNotFound
	}

	patch := map[string]any{"status": status}
	for k, v := range dataPatch {
		patch[k] = v
	}
	if err := r.validator.ValidateState(d.Type, patch); err != nil {
		return device.Device{}, fmt.Errorf("%w: %v", device.ErrInvalidState, err)
	}

	updated := d.Clone()
	updated.Status = status
	if len(dataPatch) > 0 {
		if updated.Data == nil {
			updated.Data = make(map[string]any, len(dataPatch))
		}
		for k, v := range dataPatch {
			updated.Data[k] = v
		}
	}

	r.devices[id] = &updated
	return updated.Clone(), nil
}

func (r *Registry) deviceLock(id string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

// wait blocks for the simulated latency, honoring ctx for read paths.
func (r *Registry) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
