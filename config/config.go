package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("invalid config")

// GridConfig contains broad phase configuration values
type GridConfig struct {
	// Cell size of the sprite grid used for sprite-vs-sprite queries
	SpriteCellWidth  float32 `toml:"sprite_cell_width"`
	SpriteCellHeight float32 `toml:"sprite_cell_height"`

	// Cell size of the tile grid, normally the map tile size
	TileCellWidth  float32 `toml:"tile_cell_width"`
	TileCellHeight float32 `toml:"tile_cell_height"`

	GroundSearchCells int `toml:"ground_search_cells"` // Cells scanned by ground probes
}

// PhysicsConfig contains physics-related configuration values.
// Speeds are in pixels per frame.
type PhysicsConfig struct {
	Gravity      float32 `toml:"gravity"`
	MaxFallSpeed float32 `toml:"max_fall_speed"`
	MaxRiseSpeed float32 `toml:"max_rise_speed"` // Negative, screen space grows down
	Friction     float32 `toml:"friction"`
	MaxSpeed     float32 `toml:"max_speed"`
}

// PlatformConfig contains floating platform configuration
type PlatformConfig struct {
	Travel   float32 `toml:"travel"`   // Pixels travelled upwards from the spawn point
	Duration float32 `toml:"duration"` // Seconds for one leg of the trip
}

// SimConfig contains headless simulation settings
type SimConfig struct {
	FrameRate int    `toml:"frame_rate"`
	Frames    int    `toml:"frames"`
	Level     string `toml:"level"`
	Sprites   int    `toml:"sprites"` // Sprites spawned at each spawn point
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Config holds the full simulation configuration
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Physics  PhysicsConfig  `toml:"physics"`
	Platform PlatformConfig `toml:"platform"`
	Sim      SimConfig      `toml:"sim"`
	Logging  LoggingConfig  `toml:"logging"`
}

// C is the built-in configuration used when none is supplied
var C *Config

func init() {
	C = defaults()
}

// FrameTime returns the length of one frame in seconds.
func (c *Config) FrameTime() float32 {
	return 1 / float32(c.Sim.FrameRate)
}

// Validate rejects values the grids and the frame loop cannot run with.
func (c *Config) Validate() error {
	if !(c.Grid.SpriteCellWidth > 0 && c.Grid.SpriteCellHeight > 0) {
		return fmt.Errorf("%w: sprite cell size %vx%v", ErrInvalidConfig, c.Grid.SpriteCellWidth, c.Grid.SpriteCellHeight)
	}
	if !(c.Grid.TileCellWidth > 0 && c.Grid.TileCellHeight > 0) {
		return fmt.Errorf("%w: tile cell size %vx%v", ErrInvalidConfig, c.Grid.TileCellWidth, c.Grid.TileCellHeight)
	}
	if c.Grid.GroundSearchCells < 1 {
		return fmt.Errorf("%w: ground_search_cells must be positive", ErrInvalidConfig)
	}
	if c.Sim.FrameRate < 1 {
		return fmt.Errorf("%w: frame_rate must be positive", ErrInvalidConfig)
	}
	if c.Platform.Duration <= 0 {
		return fmt.Errorf("%w: platform duration must be positive", ErrInvalidConfig)
	}
	return nil
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Grid: GridConfig{
			SpriteCellWidth:   64,
			SpriteCellHeight:  64,
			TileCellWidth:     16,
			TileCellHeight:    16,
			GroundSearchCells: 8,
		},
		Physics: PhysicsConfig{
			Gravity:      0.75,
			MaxFallSpeed: 10.0,
			MaxRiseSpeed: -10.0,
			Friction:     0.5,
			MaxSpeed:     6.0,
		},
		Platform: PlatformConfig{
			Travel:   128,
			Duration: 2,
		},
		Sim: SimConfig{
			FrameRate: 60,
			Frames:    600,
			Sprites:   1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
