// Package config loads and validates supertrader settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/supertrader/internal/logger"
	"github.com/rustyeddy/supertrader/journal"
	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/sim"
)

// ErrUnknownPreset is returned by Preset for a name it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

const (
	PresetClassic = "classic"
	PresetEndless = "endless"
)

// Config is the complete supertrader configuration.
type Config struct {
	Game    GameConfig     `json:"game" yaml:"game"`
	Journal journal.Config `json:"journal" yaml:"journal"`
	Log     logger.Config  `json:"log" yaml:"log"`
	Server  ServerConfig   `json:"server" yaml:"server"`
}

// GameConfig fixes the rules of a session.
type GameConfig struct {
	Preset            string  `json:"preset" yaml:"preset"`
	InitialCash       float64 `json:"initial_cash" yaml:"initial_cash"`
	SeedPrice         float64 `json:"seed_price" yaml:"seed_price"`
	MeanStep          float64 `json:"mean_step" yaml:"mean_step"`
	StdDev            float64 `json:"stddev" yaml:"stddev"`
	HistoryCapacity   int     `json:"history_capacity" yaml:"history_capacity"`
	TickInterval      string  `json:"tick_interval" yaml:"tick_interval"` // e.g. "200ms"
	EnforceInsolvency bool    `json:"enforce_insolvency" yaml:"enforce_insolvency"`
	Spread            float64 `json:"spread" yaml:"spread"`
	// Seed fixes the random walk. Zero draws a new seed per session.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// PriceSteps replaces the random walk with a fixed price path.
	PriceSteps []float64 `json:"price_steps,omitempty" yaml:"price_steps,omitempty"`
}

// ServerConfig contains HTTP API parameters.
type ServerConfig struct {
	Addr           string `json:"addr" yaml:"addr"`
	StreamInterval string `json:"stream_interval" yaml:"stream_interval"` // websocket push period
}

// TickDuration parses TickInterval.
func (g GameConfig) TickDuration() (time.Duration, error) {
	if g.TickInterval == "" {
		return sim.DefaultTickInterval, nil
	}
	return time.ParseDuration(g.TickInterval)
}

// StreamDuration parses StreamInterval. Empty means push on every tick.
func (s ServerConfig) StreamDuration() (time.Duration, error) {
	if s.StreamInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(s.StreamInterval)
}

// EngineConfig converts the game section into engine settings.
func (g GameConfig) EngineConfig() sim.Config {
	return sim.Config{
		InitialCash:       g.InitialCash,
		SeedPrice:         g.SeedPrice,
		HistoryCapacity:   g.HistoryCapacity,
		Spread:            g.Spread,
		EnforceInsolvency: g.EnforceInsolvency,
		Preset:            g.Preset,
	}
}

// NewGenerator returns the price source for a new session.
func (g GameConfig) NewGenerator() market.Generator {
	if len(g.PriceSteps) > 0 {
		steps := make([]market.Price, len(g.PriceSteps))
		copy(steps, g.PriceSteps)
		return &market.Scripted{Steps: steps}
	}
	return market.NewRandomWalk(g.MeanStep, g.StdDev, g.Seed)
}

// Preset returns the game settings of a named preset. classic ends the game
// when the price reaches zero; endless is more volatile and never ends.
func Preset(name string) (GameConfig, error) {
	g := GameConfig{
		Preset:            PresetClassic,
		InitialCash:       1000,
		SeedPrice:         100,
		MeanStep:          0,
		StdDev:            1.0,
		HistoryCapacity:   market.DefaultHistoryCapacity,
		TickInterval:      "200ms",
		EnforceInsolvency: true,
		Spread:            0.01,
	}

	switch strings.ToLower(name) {
	case "", PresetClassic:
	case PresetEndless:
		g.Preset = PresetEndless
		g.StdDev = 2.5
		g.EnforceInsolvency = false
	default:
		return GameConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return g, nil
}

// Presets lists the preset names.
func Presets() []string {
	return []string{PresetClassic, PresetEndless}
}

// Default returns the classic game with journaling off.
func Default() *Config {
	game, _ := Preset(PresetClassic)
	return &Config{
		Game:    game,
		Journal: journal.DefaultConfig(),
		Log:     logger.DefaultConfig(),
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			StreamInterval: "",
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields missing
// from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	g := c.Game
	if g.InitialCash <= 0 {
		return fmt.Errorf("game.initial_cash must be positive")
	}
	if g.SeedPrice <= 0 {
		return fmt.Errorf("game.seed_price must be positive")
	}
	if g.StdDev < 0 {
		return fmt.Errorf("game.stddev must not be negative")
	}
	if g.HistoryCapacity <= 0 {
		return fmt.Errorf("game.history_capacity must be positive")
	}
	if g.Spread <= 0 || g.Spread >= 1 {
		return fmt.Errorf("game.spread must be in (0, 1)")
	}
	if d, err := g.TickDuration(); err != nil {
		return fmt.Errorf("game.tick_interval: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("game.tick_interval must be positive")
	}

	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if d, err := c.Server.StreamDuration(); err != nil {
		return fmt.Errorf("server.stream_interval: %w", err)
	} else if d < 0 {
		return fmt.Errorf("server.stream_interval must not be negative")
	}
	return nil
}
