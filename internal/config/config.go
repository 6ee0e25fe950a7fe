// Package config loads the simulator configuration from YAML. A missing
// file is not an error: the defaults describe a runnable simulation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the combat simulator.
type Simulator struct {
	// Simulation timing
	TickMs    int32 `yaml:"tick_ms"`
	TickCount int   `yaml:"tick_count"` // ticks to run in batch mode, 0 = until idle

	// Engine limits
	MaxActiveSprites int   `yaml:"max_active_sprites"`
	ViewTilesX       int32 `yaml:"view_tiles_x"`
	ViewTilesY       int32 `yaml:"view_tiles_y"`

	// World
	MapWidthTiles  int32 `yaml:"map_width_tiles"`
	MapHeightTiles int32 `yaml:"map_height_tiles"`

	// Content
	AbilityDir string `yaml:"ability_dir"`

	// Determinism: 0 picks a time-based seed.
	RandomSeed uint64 `yaml:"random_seed"`

	// Telemetry
	Telemetry Telemetry `yaml:"telemetry"`
}

// Telemetry configures the optional OTLP trace export.
type Telemetry struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Default returns a Simulator config with sensible defaults.
func Default() Simulator {
	return Simulator{
		TickMs:           50,
		TickCount:        200,
		MaxActiveSprites: 128,
		ViewTilesX:       13,
		ViewTilesY:       10,
		MapWidthTiles:    128,
		MapHeightTiles:   128,
		AbilityDir:       "abilities",
		Telemetry: Telemetry{
			Enabled:  false,
			Endpoint: "127.0.0.1:4318",
		},
	}
}

// Load reads the simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulator, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
