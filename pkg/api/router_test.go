package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/registry"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

func newTestRouter(t *testing.T) (*Router, *history.Log) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := database.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	reg := registry.New(device.DefaultCatalog(), registry.WithLatency(0, 0))
	s := store.New(reg)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	eventLog := history.NewLog(database)
	dispatcher := command.NewDispatcher(s)

	return NewRouter(s, dispatcher, eventLog, database), eventLog
}

func doRequest(t *testing.T, r *Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Status  string `json:"status"`
		Devices int    `json:"devices"`
	}
	decodeJSON(t, w, &resp)
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Devices != 9 {
		t.Errorf("devices = %d, want 9", resp.Devices)
	}
}

func TestListDevices(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/devices", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 9 {
		t.Errorf("count = %d, want 9", resp.Count)
	}
}

func TestListDevicesFilterByType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/devices?type=thermostat", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Devices []device.Device `json:"devices"`
		Count   int             `json:"count"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	for _, d := range resp.Devices {
		if d.Type != device.TypeThermostat {
			t.Errorf("device %s has type %q", d.ID, d.Type)
		}
	}
}

func TestGetDevice(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/devices/light-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Device device.Device `json:"device"`
	}
	decodeJSON(t, w, &resp)
	if resp.Device.ID != "light-1" {
		t.Errorf("id = %q, want light-1", resp.Device.ID)
	}
}

func TestGetDeviceNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/devices/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	decodeJSON(t, w, &resp)
	if resp.Error != "not_found" {
		t.Errorf("error = %q, want not_found", resp.Error)
	}
}

func TestToggleLight(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/lights/light-1/toggle", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Device device.Device `json:"device"`
	}
	decodeJSON(t, w, &resp)
	// light-1 seeds as off
	if resp.Device.Status != device.StatusOn {
		t.Errorf("status = %q, want on", resp.Device.Status)
	}
}

func TestToggleLightWrongType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/lights/lock-1/toggle", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	decodeJSON(t, w, &resp)
	if resp.Error != "wrong_type" {
		t.Errorf("error = %q, want wrong_type", resp.Error)
	}
}

func TestSetThermostat(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/thermostats/thermostat-1/temperature", `{"temperature": 25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Device device.Device `json:"device"`
	}
	decodeJSON(t, w, &resp)
	if got := resp.Device.Data["temperature"]; got != float64(25) {
		t.Errorf("temperature = %v, want 25", got)
	}
	if resp.Device.Status != device.StatusOn {
		t.Errorf("status = %q, want on", resp.Device.Status)
	}
}

func TestSetThermostatMissingBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/thermostats/thermostat-1/temperature", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSetThermostatExtremeTemperature(t *testing.T) {
	r, _ := newTestRouter(t)

	// Any parsed integer is a legal target, even uncomfortable ones
	w := doRequest(t, r, http.MethodPost, "/api/v1/thermostats/thermostat-1/temperature", `{"temperature": 99}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Device device.Device `json:"device"`
	}
	decodeJSON(t, w, &resp)
	if got := resp.Device.Data["temperature"]; got != float64(99) {
		t.Errorf("temperature = %v, want 99", got)
	}
}

func TestDispatchCommand(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/commands", `{"text": "unlock front door"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result      string `json:"result"`
		Applied     int    `json:"applied"`
		Description string `json:"description"`
	}
	decodeJSON(t, w, &resp)
	if resp.Result != "applied" {
		t.Fatalf("result = %q, want applied", resp.Result)
	}
	if resp.Applied != 1 {
		t.Errorf("applied = %d, want 1", resp.Applied)
	}

	// The lock itself should now be unlocked
	wGet := doRequest(t, r, http.MethodGet, "/api/v1/devices/lock-1", "")
	var dev struct {
		Device device.Device `json:"device"`
	}
	decodeJSON(t, wGet, &dev)
	if dev.Device.Status != device.StatusUnlocked {
		t.Errorf("lock status = %q, want unlocked", dev.Device.Status)
	}
}

func TestDispatchCommandNotUnderstood(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/commands", `{"text": "please dim the lights"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Result string `json:"result"`
	}
	decodeJSON(t, w, &resp)
	if resp.Result != "not_understood" {
		t.Errorf("result = %q, want not_understood", resp.Result)
	}
}

func TestRecentCommands(t *testing.T) {
	r, _ := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/api/v1/commands", `{"text": "lock front door"}`)
	doRequest(t, r, http.MethodPost, "/api/v1/commands", `{"text": "turn off bedroom lights"}`)

	w := doRequest(t, r, http.MethodGet, "/api/v1/commands/recent", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Commands []command.Record `json:"commands"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(resp.Commands))
	}
	if resp.Commands[0].Phrase != "turn off bedroom lights" {
		t.Errorf("newest phrase = %q", resp.Commands[0].Phrase)
	}
}

func TestListEvents(t *testing.T) {
	r, eventLog := newTestRouter(t)

	ctx := context.Background()
	for _, e := range []history.Event{
		{DeviceID: "light-1", DeviceName: "Main Light", EventType: history.EventStatusChange, Status: device.StatusOff},
		{DeviceID: "lock-1", DeviceName: "Front Door", EventType: history.EventStatusChange, Status: device.StatusLocked},
	} {
		if err := eventLog.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/api/v1/events", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	wDev := doRequest(t, r, http.MethodGet, "/api/v1/events?device_id=lock-1", "")
	var devResp struct {
		Events []history.Event `json:"events"`
	}
	decodeJSON(t, wDev, &devResp)
	if len(devResp.Events) != 1 || devResp.Events[0].DeviceID != "lock-1" {
		t.Errorf("device events = %+v", devResp.Events)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		VoiceControlEnabled bool `json:"voice_control_enabled"`
		PollingIntervalSecs int  `json:"polling_interval_secs"`
	}
	decodeJSON(t, w, &resp)
	if !resp.VoiceControlEnabled {
		t.Error("voice control should default to enabled")
	}
	if resp.PollingIntervalSecs != 30 {
		t.Errorf("polling interval = %d, want 30", resp.PollingIntervalSecs)
	}

	wPut := doRequest(t, r, http.MethodPut, "/api/v1/settings", `{"polling_interval_secs": 60, "voice_control_enabled": false}`)
	if wPut.Code != http.StatusOK {
		t.Fatalf("put status = %d, want 200: %s", wPut.Code, wPut.Body.String())
	}

	wGet := doRequest(t, r, http.MethodGet, "/api/v1/settings", "")
	decodeJSON(t, wGet, &resp)
	if resp.VoiceControlEnabled {
		t.Error("voice control should be disabled after update")
	}
	if resp.PollingIntervalSecs != 60 {
		t.Errorf("polling interval = %d, want 60", resp.PollingIntervalSecs)
	}
}

func TestUpdateSettingsRejectsBadInterval(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPut, "/api/v1/settings", `{"polling_interval_secs": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
