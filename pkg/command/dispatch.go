package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// Verbs is the slice of store behavior the dispatcher needs: the current
// snapshot plus the three mutation verbs.
type Verbs interface {
	Devices() []device.Device
	ToggleLight(ctx context.Context, id string) (device.Device, error)
	SetThermostat(ctx context.Context, id string, temperature int) (device.Device, error)
	ToggleLock(ctx context.Context, id string) (device.Device, error)
}

// OutcomeKind classifies a dispatch result.
type OutcomeKind string

const (
	OutcomeApplied           OutcomeKind = "applied"
	OutcomeKindNoDevice      OutcomeKind = "no_device_found"
	OutcomeKindNotUnderstood OutcomeKind = "not_understood"
)

// Outcome is the dispatcher's entire public contract with its caller.
// Expected failures (no match, not understood) are values, never errors.
type Outcome struct {
	Kind        OutcomeKind `json:"result"`
	Applied     int         `json:"applied"`
	Description string      `json:"description,omitempty"`
	Fragment    string      `json:"fragment,omitempty"`
}

// Record pairs a dispatched phrase with its outcome.
type Record struct {
	Phrase  string    `json:"phrase"`
	Outcome Outcome   `json:"outcome"`
	At      time.Time `json:"at"`
}

// recentCap bounds the retained command history, matching the dashboard's
// five-entry list.
const recentCap = 5

// Dispatcher orchestrates interpreter output into store mutations.
type Dispatcher struct {
	verbs Verbs

	mu     sync.Mutex
	recent []Record // newest first
}

// NewDispatcher creates a Dispatcher over the given verbs.
func NewDispatcher(verbs Verbs) *Dispatcher {
	return &Dispatcher{verbs: verbs}
}

// Dispatch interprets a phrase against the current snapshot and applies the
// resolved intents. For light and lock intents a device already in its
// target state is skipped; thermostat intents always apply.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) Outcome {
	devices := d.verbs.Devices()
	in := Interpret(text, devices)

	var out Outcome
	switch in.Outcome {
	case OutcomeNotUnderstood:
		out = Outcome{Kind: OutcomeKindNotUnderstood}

	case OutcomeNoDeviceFound:
		out = Outcome{
			Kind:        OutcomeKindNoDevice,
			Fragment:    in.Fragment,
			Description: describeNoDevice(in),
		}

	default:
		out = Outcome{
			Kind:        OutcomeApplied,
			Applied:     d.apply(ctx, in, devices),
			Description: describeApplied(in),
		}
	}

	log.Info().
		Str("phrase", text).
		Str("result", string(out.Kind)).
		Int("applied", out.Applied).
		Msg("command dispatched")

	d.remember(text, out)
	return out
}

// Recent returns the retained dispatch records, newest first.
func (d *Dispatcher) Recent() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Record, len(d.recent))
	copy(out, d.recent)
	return out
}

func (d *Dispatcher) apply(ctx context.Context, in Interpretation, devices []device.Device) int {
	applied := 0
	for _, intent := range in.Intents {
		var err error
		switch intent.Verb {
		case VerbSetThermostat:
			_, err = d.verbs.SetThermostat(ctx, intent.DeviceID, intent.Temperature)

		case VerbToggleLight:
			if !needsToggle(devices, intent) {
				continue
			}
			_, err = d.verbs.ToggleLight(ctx, intent.DeviceID)

		case VerbToggleLock:
			if !needsToggle(devices, intent) {
				continue
			}
			_, err = d.verbs.ToggleLock(ctx, intent.DeviceID)
		}

		if err != nil {
			// Absent devices are a no-op, not a failure of the whole phrase
			if !store.IsNotFound(err) {
				log.Warn().Err(err).Str("device_id", intent.DeviceID).Msg("intent failed")
			}
			continue
		}
		applied++
	}
	return applied
}

// needsToggle is the idempotence filter: only toggle when the device's
// current status differs from the intent's target.
func needsToggle(devices []device.Device, intent Intent) bool {
	for _, d := range devices {
		if d.ID == intent.DeviceID {
			return d.Status != intent.TargetStatus
		}
	}
	return false
}

func (d *Dispatcher) remember(phrase string, out Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recent = append([]Record{{Phrase: phrase, Outcome: out, At: time.Now()}}, d.recent...)
	if len(d.recent) > recentCap {
		d.recent = d.recent[:recentCap]
	}
}

func describeApplied(in Interpretation) string {
	switch in.Kind {
	case KindLight:
		word := "off"
		if in.On {
			word = "on"
		}
		return fmt.Sprintf("Turned %s lights in %s", word, in.Room)
	case KindThermostat:
		return fmt.Sprintf("Set %s temperature to %d°C", in.Room, in.Temperature)
	case KindLock:
		word := "Unlocked"
		if in.Lock {
			word = "Locked"
		}
		return fmt.Sprintf("%s %s door", word, in.Door)
	}
	return ""
}

func describeNoDevice(in Interpretation) string {
	switch in.Kind {
	case KindLight:
		return fmt.Sprintf("No lights found in %s", in.Room)
	case KindThermostat:
		return fmt.Sprintf("No thermostat found in %s", in.Room)
	case KindLock:
		return fmt.Sprintf("No door found with name %s", in.Door)
	}
	return ""
}
