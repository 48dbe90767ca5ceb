// Package config holds the boot-time server configuration: one struct, one
// Default constructor, optional env-var overrides — the same shape the
// teacher's generation and spawner configs use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the server's boot configuration.
type Config struct {
	Address         string
	Port            uint16
	Width           uint8
	Height          uint8
	Teams           []string
	ClientsPerTeam  uint64
	Frequency       uint16
	Seed            int64
	TelemetryDBPath string
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Address:         "0.0.0.0",
		Port:            4242,
		Width:           10,
		Height:          10,
		Teams:           []string{"alpha", "beta"},
		ClientsPerTeam:  2,
		Frequency:       100,
		Seed:            1,
		TelemetryDBPath: "data/citadel.db",
	}
}

// Validate checks the invariants the spec requires of a boot configuration.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("config: width and height must be positive")
	}
	if c.Frequency < 1 || c.Frequency > 1000 {
		return fmt.Errorf("config: frequency %d out of legal range 1-1000", c.Frequency)
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("config: at least one team required")
	}
	return nil
}

// FromEnv overlays CITADEL_* environment variables onto a base config,
// mirroring the teacher's nil-checked-optional-override pattern for ambient
// boot settings. Unset variables leave the base value untouched; malformed
// values are ignored with the base value kept (boot-time env parsing is not
// meant to produce a client-facing error path).
func FromEnv(base Config) Config {
	c := base
	if v := os.Getenv("CITADEL_PORT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			c.Port = uint16(n)
		}
	}
	if v := os.Getenv("CITADEL_WIDTH"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			c.Width = uint8(n)
		}
	}
	if v := os.Getenv("CITADEL_HEIGHT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			c.Height = uint8(n)
		}
	}
	if v := os.Getenv("CITADEL_TEAMS"); v != "" {
		c.Teams = strings.Split(v, ",")
	}
	if v := os.Getenv("CITADEL_CLIENTS_PER_TEAM"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.ClientsPerTeam = n
		}
	}
	if v := os.Getenv("CITADEL_FREQUENCY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			c.Frequency = uint16(n)
		}
	}
	if v := os.Getenv("CITADEL_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	return c
}
