package command

import (
	"context"
	"testing"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/registry"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// fakeVerbs records verb invocations for call-count assertions.
type fakeVerbs struct {
	devices []device.Device

	lightCalls  []string
	lockCalls   []string
	thermoCalls []string
	temps       map[string]int
}

func newFakeVerbs(devices []device.Device) *fakeVerbs {
	return &fakeVerbs{devices: devices, temps: make(map[string]int)}
}

func (f *fakeVerbs) Devices() []device.Device {
	return f.devices
}

func (f *fakeVerbs) ToggleLight(_ context.Context, id string) (device.Device, error) {
	f.lightCalls = append(f.lightCalls, id)
	return device.Device{ID: id}, nil
}

func (f *fakeVerbs) SetThermostat(_ context.Context, id string, temperature int) (device.Device, error) {
	f.thermoCalls = append(f.thermoCalls, id)
	f.temps[id] = temperature
	return device.Device{ID: id}, nil
}

func (f *fakeVerbs) ToggleLock(_ context.Context, id string) (device.Device, error) {
	f.lockCalls = append(f.lockCalls, id)
	return device.Device{ID: id}, nil
}

func TestDispatch_TurnOnLight(t *testing.T) {
	verbs := newFakeVerbs([]device.Device{
		{ID: "light-1", Type: device.TypeLight, Room: "Living Room", Status: device.StatusOff},
	})
	d := NewDispatcher(verbs)

	out := d.Dispatch(context.Background(), "turn on living room light")
	if out.Kind != OutcomeApplied {
		t.Fatalf("expected applied, got %q", out.Kind)
	}
	if out.Applied != 1 {
		t.Errorf("expected 1 applied, got %d", out.Applied)
	}
	if len(verbs.lightCalls) != 1 || verbs.lightCalls[0] != "light-1" {
		t.Errorf("expected one ToggleLight(light-1), got %v", verbs.lightCalls)
	}
}

func TestDispatch_IdempotenceFilter(t *testing.T) {
	verbs := newFakeVerbs([]device.Device{
		{ID: "light-2", Type: device.TypeLight, Room: "Kitchen", Status: device.StatusOn},
	})
	d := NewDispatcher(verbs)

	// Already on: zero mutations
	out := d.Dispatch(context.Background(), "turn on kitchen light")
	if out.Kind != OutcomeApplied || out.Applied != 0 {
		t.Errorf("expected applied(0), got %+v", out)
	}
	if len(verbs.lightCalls) != 0 {
		t.Errorf("expected zero ToggleLight calls, got %v", verbs.lightCalls)
	}

	// Turning it off needs exactly one
	out = d.Dispatch(context.Background(), "turn off kitchen light")
	if out.Applied != 1 {
		t.Errorf("expected 1 applied, got %d", out.Applied)
	}
	if len(verbs.lightCalls) != 1 {
		t.Errorf("expected one ToggleLight call, got %v", verbs.lightCalls)
	}
}

func TestDispatch_ThermostatAlwaysApplies(t *testing.T) {
	verbs := newFakeVerbs([]device.Device{
		{
			ID: "thermostat-2", Type: device.TypeThermostat, Room: "Bedroom",
			Status: device.StatusOn, Data: map[string]any{"temperature": 19},
		},
	})
	d := NewDispatcher(verbs)

	// Same temperature as current: no idempotence filter for thermostats
	out := d.Dispatch(context.Background(), "set bedroom to 19 degrees")
	if out.Kind != OutcomeApplied || out.Applied != 1 {
		t.Fatalf("expected applied(1), got %+v", out)
	}
	if len(verbs.thermoCalls) != 1 || verbs.thermoCalls[0] != "thermostat-2" {
		t.Errorf("expected one SetThermostat(thermostat-2), got %v", verbs.thermoCalls)
	}
	if verbs.temps["thermostat-2"] != 19 {
		t.Errorf("expected temperature 19, got %d", verbs.temps["thermostat-2"])
	}
}

func TestDispatch_MultipleLightsInRoom(t *testing.T) {
	verbs := newFakeVerbs([]device.Device{
		{ID: "light-a", Type: device.TypeLight, Room: "Kitchen", Status: device.StatusOn},
		{ID: "light-b", Type: device.TypeLight, Room: "Kitchen", Status: device.StatusOff},
		{ID: "light-c", Type: device.TypeLight, Room: "Kitchen", Status: device.StatusOn},
	})
	d := NewDispatcher(verbs)

	out := d.Dispatch(context.Background(), "turn off kitchen light")
	if out.Applied != 2 {
		t.Errorf("expected 2 applied (light-b already off), got %d", out.Applied)
	}
	if len(verbs.lightCalls) != 2 {
		t.Errorf("expected 2 ToggleLight calls, got %v", verbs.lightCalls)
	}
	for _, id := range verbs.lightCalls {
		if id == "light-b" {
			t.Error("light-b was already off and must not be toggled")
		}
	}
}

func TestDispatch_LockDoor(t *testing.T) {
	verbs := newFakeVerbs([]device.Device{
		{ID: "lock-1", Name: "Front Door", Type: device.TypeLock, Status: device.StatusUnlocked},
	})
	d := NewDispatcher(verbs)

	out := d.Dispatch(context.Background(), "lock front door")
	if out.Kind != OutcomeApplied || out.Applied != 1 {
		t.Fatalf("expected applied(1), got %+v", out)
	}
	if len(verbs.lockCalls) != 1 || verbs.lockCalls[0] != "lock-1" {
		t.Errorf("expected one ToggleLock(lock-1), got %v", verbs.lockCalls)
	}
}

func TestDispatch_NoDeviceFound(t *testing.T) {
	verbs := newFakeVerbs(device.DefaultCatalog())
	d := NewDispatcher(verbs)

	out := d.Dispatch(context.Background(), "lock garage door")
	if out.Kind != OutcomeKindNoDevice {
		t.Fatalf("expected no_device_found, got %q", out.Kind)
	}
	if out.Fragment != "garage" {
		t.Errorf("expected fragment %q, got %q", "garage", out.Fragment)
	}
	if len(verbs.lockCalls) != 0 {
		t.Errorf("expected zero mutations, got %v", verbs.lockCalls)
	}
}

func TestDispatch_NotUnderstood(t *testing.T) {
	verbs := newFakeVerbs(device.DefaultCatalog())
	d := NewDispatcher(verbs)

	out := d.Dispatch(context.Background(), "please dim the lights")
	if out.Kind != OutcomeKindNotUnderstood {
		t.Fatalf("expected not_understood, got %q", out.Kind)
	}
	if len(verbs.lightCalls)+len(verbs.lockCalls)+len(verbs.thermoCalls) != 0 {
		t.Error("expected zero mutations for an unrecognized phrase")
	}
}

func TestDispatch_RecentHistoryCapped(t *testing.T) {
	verbs := newFakeVerbs(device.DefaultCatalog())
	d := NewDispatcher(verbs)
	ctx := context.Background()

	phrases := []string{
		"turn on living room light",
		"turn off living room light",
		"set bedroom to 18 degrees",
		"lock front door",
		"unlock front door",
		"turn on kitchen light",
	}
	for _, p := range phrases {
		d.Dispatch(ctx, p)
	}

	recent := d.Recent()
	if len(recent) != 5 {
		t.Fatalf("expected history capped at 5, got %d", len(recent))
	}
	if recent[0].Phrase != "turn on kitchen light" {
		t.Errorf("expected newest first, got %q", recent[0].Phrase)
	}
}

func TestDispatch_ThermostatExtremeTemperatureApplies(t *testing.T) {
	// Full pipeline: the store's thermostat verb must accept any parsed
	// integer, not just comfortable ones.
	reg := registry.New(device.DefaultCatalog(), registry.WithLatency(0, 0))
	s := store.New(reg)
	ctx := context.Background()
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	d := NewDispatcher(s)

	out := d.Dispatch(ctx, "set bedroom to 50 degrees")
	if out.Kind != OutcomeApplied {
		t.Fatalf("expected applied, got %q", out.Kind)
	}
	if out.Applied != 1 {
		t.Fatalf("expected 1 applied, got %d", out.Applied)
	}

	got, ok := s.DeviceByID("thermostat-2")
	if !ok {
		t.Fatal("thermostat-2 missing from snapshot")
	}
	if temp := got.Data["temperature"]; temp != 50 {
		t.Errorf("temperature = %v, want 50", temp)
	}
}
