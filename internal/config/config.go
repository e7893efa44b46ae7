package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPadding     = 0.1
	DefaultSegments    = 100
	DefaultCenterWidth = 5.0
	DefaultLineWidth   = 1.0
	DefaultStep        = 0.01
	DefaultFPS         = 60
	DefaultFactor      = 0.5
	DefaultWidth       = 800
	DefaultHeight      = 800
	DefaultTitle       = "wavelines"

	// MaxFPS keeps Interval well above timer resolution.
	MaxFPS = 1000
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Stroke StrokeConfig `yaml:"stroke"`
	Timing TimingConfig `yaml:"timing"`
	Noise  NoiseConfig  `yaml:"noise"`
	Window WindowConfig `yaml:"window"`
}

type LayoutConfig struct {
	Padding  float32 `yaml:"padding"`
	Segments int     `yaml:"segments"`
}

type StrokeConfig struct {
	Center float32 `yaml:"center"`
	Lines  float32 `yaml:"lines"`
}

type TimingConfig struct {
	Step float32 `yaml:"step"`
	FPS  int     `yaml:"fps"`
}

type NoiseConfig struct {
	Factor float32 `yaml:"factor"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{Padding: DefaultPadding, Segments: DefaultSegments},
		Stroke: StrokeConfig{Center: DefaultCenterWidth, Lines: DefaultLineWidth},
		Timing: TimingConfig{Step: DefaultStep, FPS: DefaultFPS},
		Noise:  NoiseConfig{Factor: DefaultFactor},
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
	}
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path over a copy of base; keys missing from the file keep
// base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no host can run with. Padding and segment count
// are not checked: degenerate layouts are drawable.
func (c *Config) Validate() error {
	switch {
	case c.Timing.FPS <= 0 || c.Timing.FPS > MaxFPS:
		return fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalid, MaxFPS, c.Timing.FPS)
	case c.Timing.Step < 0:
		return fmt.Errorf("%w: step must not be negative, got %g", ErrInvalid, c.Timing.Step)
	case c.Stroke.Center <= 0 || c.Stroke.Lines <= 0:
		return fmt.Errorf("%w: stroke widths must be positive, got %g/%g", ErrInvalid, c.Stroke.Center, c.Stroke.Lines)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// Interval is the tick period for the configured frame rate.
func (c *Config) Interval() time.Duration {
	if c.Timing.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Timing.FPS)
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
