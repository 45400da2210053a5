package types

import (
	"time"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
)

// --- Request DTOs ---

// SetThermostatRequest is the request body for POST /thermostats/:id/temperature
type SetThermostatRequest struct {
	Temperature int `json:"temperature" binding:"required"`
}

// CommandRequest is the request body for POST /commands
type CommandRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateSettingsRequest is the request body for PUT /settings
type UpdateSettingsRequest struct {
	VoiceControlEnabled  *bool `json:"voice_control_enabled"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
	PollingIntervalSecs  *int  `json:"polling_interval_secs"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Devices   int       `json:"devices"`
	Timestamp time.Time `json:"timestamp"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []device.Device `json:"devices"`
	Count   int             `json:"count"`
}

// DeviceResponse is returned from GET /devices/:id and the control endpoints
type DeviceResponse struct {
	Device device.Device `json:"device"`
}

// CommandResponse is returned from POST /commands
type CommandResponse struct {
	command.Outcome
}

// RecentCommandsResponse is returned from GET /commands/recent
type RecentCommandsResponse struct {
	Commands []command.Record `json:"commands"`
}

// EventsResponse is returned from GET /events
type EventsResponse struct {
	Events []history.Event `json:"events"`
	Count  int             `json:"count"`
}

// SettingsResponse is returned from GET /settings and PUT /settings
type SettingsResponse struct {
	VoiceControlEnabled  bool `json:"voice_control_enabled"`
	NotificationsEnabled bool `json:"notifications_enabled"`
	PollingIntervalSecs  int  `json:"polling_interval_secs"`
}
