// Package config loads the keyglob YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/twinfer/keyglob"
	"github.com/twinfer/keyglob/filter"
)

// Config holds the command and server configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Match  MatchConfig  `yaml:"match"`
	Limits LimitsConfig `yaml:"limits"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional backing file, empty to disable
}

// MatchConfig is the default include/exclude expression.
type MatchConfig struct {
	IgnoreCase bool     `yaml:"ignore_case"`
	Includes   []string `yaml:"includes"`
	Excludes   []string `yaml:"excludes"`
}

// LimitsConfig bounds the cost of a single match.
type LimitsConfig struct {
	MaxPattern Size `yaml:"max_pattern"`
	MaxSubject Size `yaml:"max_subject"`
	MaxSteps   int  `yaml:"max_steps"`
	MaxDepth   int  `yaml:"max_depth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // "debug" or "release"
}

// Default returns configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Limits: LimitsConfig{
			MaxPattern: 256,
			MaxSubject: 64 * 1000,
			MaxSteps:   1_000_000,
			MaxDepth:   512,
		},
		Server: ServerConfig{
			Addr: ":8087",
			Mode: "release",
		},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks limits and the server mode.
func (c *Config) Validate() error {
	var errs []error
	if c.Limits.MaxPattern < 0 || c.Limits.MaxSubject < 0 {
		errs = append(errs, errors.New("limits: sizes must not be negative"))
	}
	if c.Limits.MaxSteps < 0 || c.Limits.MaxDepth < 0 {
		errs = append(errs, errors.New("limits: max_steps and max_depth must not be negative"))
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server: unknown mode %q", c.Server.Mode))
	}
	return errors.Join(errs...)
}

// Expr returns the configured include/exclude expression.
func (c *Config) Expr() *filter.SimpleExpr {
	return &filter.SimpleExpr{
		Includes:   c.Match.Includes,
		Excludes:   c.Match.Excludes,
		IgnoreCase: c.Match.IgnoreCase,
	}
}

// FilterLimits returns the size limits as understood by the filter package.
func (c *Config) FilterLimits() filter.Limits {
	return filter.Limits{
		MaxPattern: int(c.Limits.MaxPattern),
		MaxSubject: int(c.Limits.MaxSubject),
		MaxSteps:   c.Limits.MaxSteps,
		MaxDepth:   c.Limits.MaxDepth,
	}
}

// MatchLimits returns the step and depth budget of a single bounded match.
func (c *Config) MatchLimits() keyglob.Limits {
	return keyglob.Limits{MaxSteps: c.Limits.MaxSteps, MaxDepth: c.Limits.MaxDepth}
}
