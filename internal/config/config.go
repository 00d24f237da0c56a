// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultWorkers      = 3
	DefaultIterations   = 5
	DefaultDelaySeconds = 1
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for threadrun.
type Config struct {
	// Worker settings
	Workers      int `toml:"workers"`
	Iterations   int `toml:"iterations"`
	DelaySeconds int `toml:"delay_seconds"`

	// Paths
	PlanFile   string `toml:"plan_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	Verbose       bool   `toml:"verbose"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Delay returns the per-iteration worker delay.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// setDefaults populates the configuration with default values. Defaults
// reproduce the classic three-worker five-iteration countdown.
func setDefaults(cfg *Config) {
	cfg.Workers = DefaultWorkers
	cfg.Iterations = DefaultIterations
	cfg.DelaySeconds = DefaultDelaySeconds
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// validate rejects values the launcher cannot honor.
func validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", cfg.Iterations)
	}
	if cfg.DelaySeconds < 0 {
		return fmt.Errorf("delay_seconds must be >= 0, got %d", cfg.DelaySeconds)
	}
	return nil
}
