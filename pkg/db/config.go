package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Settings  *Settings
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return "0.0.0.0:8080"
	}
	return c.APIServer.Address()
}

// Timezone returns the profile timezone.
func (c *Config) Timezone() string {
	if c.Profile == nil {
		return "UTC"
	}
	return c.Profile.Timezone
}

// ListLatency returns the simulated registry list latency.
func (c *Config) ListLatency() time.Duration {
	if c.Settings == nil {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Settings.ListLatencyMs) * time.Millisecond
}

// OpLatency returns the simulated registry per-operation latency.
func (c *Config) OpLatency() time.Duration {
	if c.Settings == nil {
		return 300 * time.Millisecond
	}
	return time.Duration(c.Settings.OpLatencyMs) * time.Millisecond
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	settings, err := db.Settings().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	config.Settings = settings

	return config, nil
}
