package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/registry"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"

	_ "github.com/JoyceUbale/animated-smart-home-verse/docs"
)

// @title           Homeverse API
// @version         1.0
// @description     REST API for controlling smart home devices and dispatching natural-language commands

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
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

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Timezone()).
		Str("api_address", cfg.APIAddress()).
		Msg("Configuration loaded")

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
	log.Info().Int("devices", len(deviceStore.Devices())).Msg("Device snapshot loaded")

	// Create and start API router
	router := api.NewRouter(deviceStore, dispatcher, eventLog, database)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		stopRecorder()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.APIAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
