package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	homeversemcp "github.com/JoyceUbale/animated-smart-home-verse/pkg/mcp"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/registry"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/homeverse/homeverse.db)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Wire up the device pipeline; latency knobs come from the settings row
	reg := registry.New(device.DefaultCatalog(),
		registry.WithLatency(cfg.ListLatency(), cfg.OpLatency()))
	deviceStore := store.New(reg)
	dispatcher := command.NewDispatcher(deviceStore)
	eventLog := history.NewLog(database)

	// Record device state changes into the history log
	recorderCtx, stopRecorder := context.WithCancel(ctx)
	defer stopRecorder()
	recorder := history.NewRecorder(eventLog, deviceStore)
	go recorder.Run(recorderCtx)

	// Load the initial snapshot before serving
	if err := deviceStore.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load device snapshot")
	}

	// Create and start MCP server
	mcpServer := homeversemcp.NewServer(deviceStore, dispatcher, eventLog)

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
