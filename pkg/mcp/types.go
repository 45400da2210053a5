package mcp

import (
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
)

// --- Health Tool ---

// GetHealthInput is the input for the get_health tool
type GetHealthInput struct{}

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Devices   int    `json:"devices" jsonschema:"description=Number of devices in the current snapshot"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Devices Tool ---

// ListDevicesInput is the input for the list_devices tool
type ListDevicesInput struct {
	Type string `json:"type,omitempty" jsonschema:"description=Filter by device type (light/thermostat/lock/camera)"`
}

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceInfo `json:"devices" jsonschema:"description=Devices in the current snapshot"`
	Count   int          `json:"count" jsonschema:"description=Total number of devices"`
}

// DeviceInfo represents a device in tool outputs
type DeviceInfo struct {
	ID     string         `json:"id" jsonschema:"description=Unique device identifier"`
	Name   string         `json:"name" jsonschema:"description=User-friendly device name"`
	Type   string         `json:"type" jsonschema:"description=Device type (light/thermostat/lock/camera)"`
	Room   string         `json:"room" jsonschema:"description=Room the device belongs to"`
	Status string         `json:"status" jsonschema:"description=Current status (on/off/locked/unlocked)"`
	Data   map[string]any `json:"data,omitempty" jsonschema:"description=Type-specific state such as temperature or mode"`
}

// --- Get Device Tool ---

// GetDeviceInput is the input for the get_device tool
type GetDeviceInput struct {
	ID string `json:"id" jsonschema:"required,description=Device ID"`
}

// GetDeviceOutput is the output for the get_device tool
type GetDeviceOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Device information"`
}

// --- Refresh Devices Tool ---

// RefreshDevicesInput is the input for the refresh_devices tool
type RefreshDevicesInput struct{}

// RefreshDevicesOutput is the output for the refresh_devices tool
type RefreshDevicesOutput struct {
	Success bool `json:"success" jsonschema:"description=Whether the refresh succeeded"`
	Count   int  `json:"count" jsonschema:"description=Number of devices in the new snapshot"`
}

// --- Toggle Light Tool ---

// ToggleLightInput is the input for the toggle_light tool
type ToggleLightInput struct {
	ID string `json:"id" jsonschema:"required,description=Light device ID"`
}

// ToggleLightOutput is the output for the toggle_light tool
type ToggleLightOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Light state after the toggle"`
}

// --- Set Thermostat Tool ---

// SetThermostatInput is the input for the set_thermostat tool
type SetThermostatInput struct {
	ID          string `json:"id" jsonschema:"required,description=Thermostat device ID"`
	Temperature int    `json:"temperature" jsonschema:"required,description=Target temperature in degrees Celsius"`
}

// SetThermostatOutput is the output for the set_thermostat tool
type SetThermostatOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Thermostat state after the change"`
}

// --- Toggle Lock Tool ---

// ToggleLockInput is the input for the toggle_lock tool
type ToggleLockInput struct {
	ID string `json:"id" jsonschema:"required,description=Lock device ID"`
}

// ToggleLockOutput is the output for the toggle_lock tool
type ToggleLockOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Lock state after the toggle"`
}

// --- Send Command Tool ---

// SendCommandInput is the input for the send_command tool
type SendCommandInput struct {
	Text string `json:"text" jsonschema:"required,description=Natural-language command phrase"`
}

// SendCommandOutput is the output for the send_command tool
type SendCommandOutput struct {
	Result      string `json:"result" jsonschema:"description=Command result (applied/no_device_found/not_understood)"`
	Applied     int    `json:"applied" jsonschema:"description=Number of devices changed"`
	Description string `json:"description,omitempty" jsonschema:"description=Human-readable summary of what happened"`
	Fragment    string `json:"fragment,omitempty" jsonschema:"description=Room or name fragment that failed to match"`
}

// --- Recent Commands Tool ---

// GetRecentCommandsInput is the input for the get_recent_commands tool
type GetRecentCommandsInput struct{}

// GetRecentCommandsOutput is the output for the get_recent_commands tool
type GetRecentCommandsOutput struct {
	Commands []command.Record `json:"commands" jsonschema:"description=Recently dispatched commands, newest first"`
}

// --- Device Events Tool ---

// GetDeviceEventsInput is the input for the get_device_events tool
type GetDeviceEventsInput struct {
	DeviceID string `json:"device_id,omitempty" jsonschema:"description=Only events for this device"`
	Limit    int    `json:"limit,omitempty" jsonschema:"description=Maximum events to return (default 20)"`
}

// GetDeviceEventsOutput is the output for the get_device_events tool
type GetDeviceEventsOutput struct {
	Events []history.Event `json:"events" jsonschema:"description=Device history events, newest first"`
	Count  int             `json:"count" jsonschema:"description=Number of events returned"`
}

// --- Helper conversions ---

// DeviceToInfo converts a device.Device to DeviceInfo
func DeviceToInfo(d device.Device) DeviceInfo {
	return DeviceInfo{
		ID:     d.ID,
		Name:   d.Name,
		Type:   d.Type,
		Room:   d.Room,
		Status: d.Status,
		Data:   d.Data,
	}
}
