package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from THREADRUN_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("THREADRUN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("THREADRUN_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Iterations = n
		}
	}
	if v := os.Getenv("THREADRUN_DELAY_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DelaySeconds = n
		}
	}
	if v := os.Getenv("THREADRUN_PLAN"); v != "" {
		cfg.PlanFile = v
	}
	if v := os.Getenv("THREADRUN_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("THREADRUN_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("THREADRUN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("THREADRUN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("THREADRUN_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("THREADRUN_VERBOSE"); v != "" {
		cfg.Verbose = boolFromString(v)
	}
}

// boolFromString parses common truthy values.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
