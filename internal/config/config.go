// Package config loads and saves the gocube YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	gocube "github.com/SeamusWaldron/gocube_animator"
)

const (
	DefaultScanTimeout = 5 * time.Second
	DefaultKeyMap      = "notation"
)

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Cube      CubeConfig      `yaml:"cube"`
	Input     InputConfig     `yaml:"input"`
	Log       LogConfig       `yaml:"log"`
	Device    DeviceConfig    `yaml:"device"`
	Strict    bool            `yaml:"strict"`
}

type AnimationConfig struct {
	Duration  time.Duration `yaml:"duration"`
	FrameRate int           `yaml:"frame_rate"`
}

type CubeConfig struct {
	Gap float64 `yaml:"gap"` // Space between cubelets, in cubelet edge lengths
}

type InputConfig struct {
	KeyMap string `yaml:"keymap"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

type DeviceConfig struct {
	ScanTimeout time.Duration `yaml:"scan_timeout"`
	UUID        string        `yaml:"uuid,omitempty"` // Connect to this device instead of the first found
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Animation: AnimationConfig{
			Duration:  gocube.DefaultDuration,
			FrameRate: gocube.DefaultFrameRate,
		},
		Cube:   CubeConfig{Gap: gocube.DefaultGap},
		Input:  InputConfig{KeyMap: DefaultKeyMap},
		Device: DeviceConfig{ScanTimeout: DefaultScanTimeout},
	}
}

// DefaultPath returns ~/.gocube_animator/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gocube_animator", "config.yaml")
}

// Load reads path over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.Animation.Duration < 0 {
		return fmt.Errorf("animation.duration must not be negative, got %s", c.Animation.Duration)
	}
	if c.Animation.FrameRate <= 0 || c.Animation.FrameRate > gocube.MaxFrameRate {
		return fmt.Errorf("animation.frame_rate must be between 1 and %d, got %d", gocube.MaxFrameRate, c.Animation.FrameRate)
	}
	if c.Cube.Gap < 0 {
		return fmt.Errorf("cube.gap must not be negative, got %g", c.Cube.Gap)
	}
	if _, err := gocube.ParseKeyMap(c.Input.KeyMap); err != nil {
		return fmt.Errorf("input.keymap: %w", err)
	}
	if c.Device.ScanTimeout <= 0 {
		return fmt.Errorf("device.scan_timeout must be positive, got %s", c.Device.ScanTimeout)
	}
	return nil
}

// Spacing returns the distance between cubelet centers.
func (c *Config) Spacing() float64 {
	return gocube.CubeletSize + c.Cube.Gap
}

// KeyMap returns the configured key map. Call Validate first.
func (c *Config) KeyMap() gocube.KeyMap {
	km, err := gocube.ParseKeyMap(c.Input.KeyMap)
	if err != nil {
		return gocube.NotationKeys
	}
	return km
}

// EngineOptions translates the settings into engine options.
func (c *Config) EngineOptions() []gocube.Option {
	return []gocube.Option{
		gocube.WithDuration(c.Animation.Duration),
		gocube.WithFrameRate(c.Animation.FrameRate),
		gocube.WithSpacing(c.Spacing()),
		gocube.WithStrict(c.Strict),
	}
}
