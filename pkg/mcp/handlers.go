package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := "healthy"
	if s.store.Err() != nil {
		status = "degraded"
	}

	out := GetHealthOutput{
		Status:    status,
		Devices:   len(s.store.Devices()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices := s.store.Devices()
	if deviceType, ok := request.GetArguments()["type"].(string); ok && deviceType != "" {
		devices = s.store.DevicesByType(deviceType)
	}

	infos := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		infos = append(infos, DeviceToInfo(d))
	}

	out := ListDevicesOutput{
		Devices: infos,
		Count:   len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, ok := s.store.DeviceByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("device not found: %s", id)), nil
	}

	out := GetDeviceOutput{Device: DeviceToInfo(d)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRefreshDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.store.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to refresh devices: %s", err)), nil
	}

	out := RefreshDevicesOutput{
		Success: true,
		Count:   len(s.store.Devices()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleToggleLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.store.ToggleLight(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle light: %s", err)), nil
	}

	out := ToggleLightOutput{Device: DeviceToInfo(d)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetThermostat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, ok := request.GetArguments()["temperature"]
	temp, isNum := raw.(float64)
	if !ok || !isNum {
		return mcp.NewToolResultError("required parameter \"temperature\" must be a number"), nil
	}

	d, err := s.store.SetThermostat(ctx, id, int(temp))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set thermostat: %s", err)), nil
	}

	out := SetThermostatOutput{Device: DeviceToInfo(d)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleToggleLock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.store.ToggleLock(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle lock: %s", err)), nil
	}

	out := ToggleLockOutput{Device: DeviceToInfo(d)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := requiredString(request, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := s.dispatcher.Dispatch(ctx, text)

	out := SendCommandOutput{
		Result:      string(outcome.Kind),
		Applied:     outcome.Applied,
		Description: outcome.Description,
		Fragment:    outcome.Fragment,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetRecentCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := GetRecentCommandsOutput{Commands: s.dispatcher.Recent()}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDeviceEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	limit := history.DefaultLimit
	if raw, ok := args["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}

	var (
		events []history.Event
		err    error
	)
	if deviceID, ok := args["device_id"].(string); ok && deviceID != "" {
		events, err = s.events.ByDevice(ctx, deviceID, limit)
	} else {
		events, err = s.events.Recent(ctx, limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load events: %s", err)), nil
	}

	out := GetDeviceEventsOutput{
		Events: events,
		Count:  len(events),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
