package schema

import (
	"testing"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
)

func TestValidateState_LightOn(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeLight, map[string]any{
		"status": "on",
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateState_LightInvalidStatus(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeLight, map[string]any{
		"status": "locked",
	})
	if err == nil {
		t.Error("expected validation error for lock status on a light")
	}
}

func TestValidateState_LockStatuses(t *testing.T) {
	v := NewValidator()

	for _, status := range []string{"locked", "unlocked"} {
		err := v.ValidateState(device.TypeLock, map[string]any{
			"status": status,
		})
		if err != nil {
			t.Errorf("status %q: expected valid payload, got: %v", status, err)
		}
	}

	err := v.ValidateState(device.TypeLock, map[string]any{
		"status": "on",
	})
	if err == nil {
		t.Error("expected validation error for light status on a lock")
	}
}

func TestValidateState_ThermostatWithTemperature(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeThermostat, map[string]any{
		"status":      "on",
		"temperature": float64(22),
		"mode":        "cooling",
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateState_ThermostatTemperatureUnbounded(t *testing.T) {
	v := NewValidator()

	// Any integer is a legal target temperature
	for _, temp := range []float64{-10, 0, 50, 120} {
		err := v.ValidateState(device.TypeThermostat, map[string]any{
			"status":      "on",
			"temperature": temp,
		})
		if err != nil {
			t.Errorf("temperature %v rejected: %v", temp, err)
		}
	}
}

func TestValidateState_ThermostatNonNumericTemperature(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeThermostat, map[string]any{
		"status":      "on",
		"temperature": "warm",
	})
	if err == nil {
		t.Error("expected validation error for non-numeric temperature")
	}
}

func TestValidateState_UnknownProperty(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeLight, map[string]any{
		"status":  "on",
		"unknown": "value",
	})
	if err == nil {
		t.Error("expected validation error for unknown property")
	}
}

func TestValidateState_UnknownTypeSkipsValidation(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState("vacuum", map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("unknown type should skip validation, got: %v", err)
	}
}

func TestValidateState_MissingStatus(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(device.TypeLight, map[string]any{})
	if err == nil {
		t.Error("expected validation error for missing status")
	}
}

func TestValidateState_CachesCompiledSchemas(t *testing.T) {
	v := NewValidator()

	// Two validations of the same type compile the schema once
	for i := 0; i < 2; i++ {
		if err := v.ValidateState(device.TypeLight, map[string]any{"status": "on"}); err != nil {
			t.Fatal(err)
		}
	}

	v.mu.RLock()
	cacheSize := len(v.cache)
	v.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}
