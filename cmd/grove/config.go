package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the application configuration, loaded from GROVE_* environment
// variables. Everything has a usable default so the binary runs with no
// environment at all.
type Config struct {
	// Name is the optional display name used in the greeting and window title.
	Name string `env:"GROVE_NAME" envDefault:""`

	// Width and Height are the initial window framebuffer size in pixels.
	Width  int `env:"GROVE_WIDTH" envDefault:"1600"`
	Height int `env:"GROVE_HEIGHT" envDefault:"900"`

	// FoliageCount is the number of foliage particles.
	FoliageCount int `env:"GROVE_FOLIAGE" envDefault:"60000"`

	// OrnamentCount is the number of ornament instances.
	OrnamentCount int `env:"GROVE_ORNAMENTS" envDefault:"320"`

	// GestureURL is the WebSocket endpoint of the hand-landmark recognizer
	// sidecar. Dialed once when the experience starts; a failed dial leaves
	// the scene in manual mode.
	GestureURL string `env:"GROVE_GESTURE_URL" envDefault:"ws://127.0.0.1:9004/landmarks"`

	// TickRate is the simulation tick rate in ticks per second.
	TickRate float64 `env:"GROVE_TICK_RATE" envDefault:"60"`

	// Profiling enables the FPS/heap/GC log line.
	Profiling bool `env:"GROVE_PROFILING" envDefault:"false"`

	// ProfilingInterval is how often the profiler logs when profiling is
	// enabled. Values below 100ms fall back to the previous interval.
	ProfilingInterval time.Duration `env:"GROVE_PROFILING_INTERVAL" envDefault:"1s"`

	// VSync caps presentation to the display refresh rate.
	VSync bool `env:"GROVE_VSYNC" envDefault:"true"`
}

// LoadConfig parses the configuration from environment variables.
//
// Returns:
//   - Config: the parsed configuration
//   - error: an error if a variable fails to parse
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
