package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// Server wraps the MCP server with Homeverse's device control functionality
type Server struct {
	mcpServer  *server.MCPServer
	store      *store.Store
	dispatcher *command.Dispatcher
	events     *history.Log
}

// NewServer creates a new MCP server for device control
func NewServer(s *store.Store, dispatcher *command.Dispatcher, events *history.Log) *Server {
	srv := &Server{
		store:      s,
		dispatcher: dispatcher,
		events:     events,
	}

	// Create MCP server
	srv.mcpServer = server.NewMCPServer(
		"homeverse",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	srv.registerTools()

	return srv
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
