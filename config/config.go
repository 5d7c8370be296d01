package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/physics"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	World   WorldConfig   `toml:"world"`
	Loop    LoopConfig    `toml:"loop"`
	Render  RenderConfig  `toml:"render"`
	Feed    FeedConfig    `toml:"feed"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type WorldConfig struct {
	Engine        string  `toml:"engine"` // "box2d" or "chipmunk"
	GravityX      float64 `toml:"gravity_x"`
	GravityY      float64 `toml:"gravity_y"`
	ScaleVelocity bool    `toml:"scale_velocity"` // convert initial velocities to world units
}

type LoopConfig struct {
	TickInterval  time.Duration `toml:"tick_interval"`
	FrameInterval time.Duration `toml:"frame_interval"`
}

type RenderConfig struct {
	CellWidth  float64 `toml:"cell_width"`  // visual units per terminal column
	CellHeight float64 `toml:"cell_height"` // visual units per terminal row
}

type FeedConfig struct {
	Users           []string      `toml:"users"`
	PublicTimeline  bool          `toml:"public_timeline"`
	BaseURL         string        `toml:"base_url"`
	File            string        `toml:"file"`
	EmitInterval    time.Duration `toml:"emit_interval"`
	RefreshInterval time.Duration `toml:"refresh_interval"`
	Shape           string        `toml:"shape"` // "box", "ball" or "mixed"
}

// Enabled reports whether any feed source is configured
func (f FeedConfig) Enabled() bool {
	return len(f.Users) > 0 || f.PublicTimeline || f.File != ""
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty disables logging
}

// Load reads path over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Engine:   "box2d",
			GravityX: constant.GravityX,
			GravityY: constant.GravityY,
		},
		Loop: LoopConfig{
			TickInterval:  constant.TickInterval,
			FrameInterval: constant.FrameUpdateInterval,
		},
		Render: RenderConfig{
			CellWidth:  constant.CellWidth,
			CellHeight: constant.CellHeight,
		},
		Feed: FeedConfig{
			BaseURL:         "http://api.twitter.com/1",
			EmitInterval:    constant.FeedEmitInterval,
			RefreshInterval: constant.FeedRefreshInterval,
			Shape:           "mixed",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	var errs []error
	if _, err := physics.Lookup(c.World.Engine); err != nil {
		errs = append(errs, err)
	}
	if c.Loop.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("loop.tick_interval must be positive, got %v", c.Loop.TickInterval))
	}
	if c.Loop.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("loop.frame_interval must be positive, got %v", c.Loop.FrameInterval))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("render cell size must be positive, got %vx%v", c.Render.CellWidth, c.Render.CellHeight))
	}
	if c.Feed.EmitInterval <= 0 || c.Feed.RefreshInterval <= 0 {
		errs = append(errs, errors.New("feed intervals must be positive"))
	}
	switch c.Feed.Shape {
	case "box", "ball", "mixed":
	default:
		errs = append(errs, fmt.Errorf("feed.shape must be box, ball or mixed, got %q", c.Feed.Shape))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within 0..1, got %v", c.Audio.Volume))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
