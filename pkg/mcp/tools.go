package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the Homeverse service and device snapshot"),
		),
		s.handleGetHealth,
	)

	// List devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List all devices in the current snapshot with their state"),
			mcp.WithString("type",
				mcp.Description("Filter by device type (light, thermostat, lock, camera)"),
			),
		),
		s.handleListDevices,
	)

	// Get device
	s.mcpServer.AddTool(
		mcp.NewTool("get_device",
			mcp.WithDescription("Get detailed information about a specific device by ID"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Device ID"),
			),
		),
		s.handleGetDevice,
	)

	// Refresh devices
	s.mcpServer.AddTool(
		mcp.NewTool("refresh_devices",
			mcp.WithDescription("Reload all devices from the registry into a fresh snapshot"),
		),
		s.handleRefreshDevices,
	)

	// Toggle light
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_light",
			mcp.WithDescription("Flip a light between on and off"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light device ID"),
			),
		),
		s.handleToggleLight,
	)

	// Set thermostat
	s.mcpServer.AddTool(
		mcp.NewTool("set_thermostat",
			mcp.WithDescription("Set a thermostat's target temperature, forcing it on"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Thermostat device ID"),
			),
			mcp.WithNumber("temperature",
				mcp.Required(),
				mcp.Description("Target temperature in degrees Celsius"),
			),
		),
		s.handleSetThermostat,
	)

	// Toggle lock
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_lock",
			mcp.WithDescription("Flip a lock between locked and unlocked"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Lock device ID"),
			),
		),
		s.handleToggleLock,
	)

	// Send natural-language command
	s.mcpServer.AddTool(
		mcp.NewTool("send_command",
			mcp.WithDescription("Interpret a natural-language phrase (e.g. \"turn on living room lights\") and apply the matching device actions"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Command phrase"),
			),
		),
		s.handleSendCommand,
	)

	// Recent commands
	s.mcpServer.AddTool(
		mcp.NewTool("get_recent_commands",
			mcp.WithDescription("List the most recently dispatched commands and their outcomes"),
		),
		s.handleGetRecentCommands,
	)

	// Device events
	s.mcpServer.AddTool(
		mcp.NewTool("get_device_events",
			mcp.WithDescription("List recent device history events, optionally scoped to one device"),
			mcp.WithString("device_id",
				mcp.Description("Only events for this device"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum events to return (default 20)"),
			),
		),
		s.handleGetDeviceEvents,
	)
}
