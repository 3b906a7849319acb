// Package config loads noisegen settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/noise-texture/internal/noise"
)

// Config holds the parameters for a noisegen run.
//
// Defaults reproduce the classic patch: 200x200 at 0.15 opacity written to
// noise.png in the working directory.
type Config struct {
	Width    int     `env:"NOISEGEN_WIDTH"     envDefault:"200"`
	Height   int     `env:"NOISEGEN_HEIGHT"    envDefault:"200"`
	Opacity  float64 `env:"NOISEGEN_OPACITY"   envDefault:"0.15"`
	Output   string  `env:"NOISEGEN_OUTPUT"    envDefault:"noise.png"`
	Seed     uint64  `env:"NOISEGEN_SEED"`
	LogLevel string  `env:"NOISEGEN_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only, ignoring the
// process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() *Config {
	p := noise.DefaultParams()
	return &Config{
		Width:    p.Width,
		Height:   p.Height,
		Opacity:  p.Opacity,
		Output:   "noise.png",
		LogLevel: "info",
	}
}

// Validate checks that the output path names a PNG file. Dimensions are
// checked by the generator.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path is empty")
	}
	f, err := imaging.FormatFromFilename(c.Output)
	if err != nil || f != imaging.PNG {
		return fmt.Errorf("output %q must have a .png extension", c.Output)
	}
	return nil
}

// Params returns the generation parameters.
func (c *Config) Params() noise.Params {
	return noise.Params{Width: c.Width, Height: c.Height, Opacity: c.Opacity}
}

// Source returns a seeded source when Seed is set, otherwise an unseeded one.
func (c *Config) Source() noise.Source {
	if c.Seed != 0 {
		return noise.NewSeededSource(c.Seed)
	}
	return noise.NewSource()
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}
