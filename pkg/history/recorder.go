package history

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// Recorder subscribes to store updates and appends a history event for every
// device change. Refresh updates are not recorded; only real mutations are.
type Recorder struct {
	log   *Log
	store *store.Store
}

// NewRecorder creates a Recorder wiring the store into the event log.
func NewRecorder(eventLog *Log, s *store.Store) *Recorder {
	return &Recorder{log: eventLog, store: s}
}

// Run consumes store updates until ctx is cancelled. It is meant to be run
// in its own goroutine.
func (r *Recorder) Run(ctx context.Context) {
	ch := r.store.Subscribe()
	defer r.store.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-ch:
			if !ok {
				return
			}
			if u.Type != store.UpdateDeviceChanged || u.Device == nil {
				continue
			}
			e := Event{
				DeviceID:   u.Device.ID,
				DeviceName: u.Device.Name,
				EventType:  EventStatusChange,
				Status:     u.Device.Status,
				OccurredAt: u.Timestamp,
			}
			if err := r.log.Append(ctx, e); err != nil {
				log.Warn().Err(err).Str("device_id", e.DeviceID).Msg("failed to record device event")
			}
		}
	}
}
