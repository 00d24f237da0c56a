// Package logging provides console diagnostics and per-run JSONL event logs.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleOptions holds configuration for console diagnostics.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console diagnostics.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "threadrun",
	}
}

// NewConsole creates a leveled console logger writing to stderr so that
// diagnostics never mix into the contractual stdout lines.
func NewConsole(opts ConsoleOptions) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// NewConsoleFromConfig creates a console logger from string configuration
// values, as loaded from TOML or environment variables.
func NewConsoleFromConfig(level, format string, timestamps bool) *log.Logger {
	opts := DefaultConsoleOptions()
	opts.Level = ParseLevel(level)
	opts.Formatter = ParseFormatter(format)
	opts.ReportTimestamp = timestamps
	return NewConsole(opts)
}

// NewTestConsole creates a console logger that writes to a specific writer,
// with minimal formatting for easier test assertions.
func NewTestConsole(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
	})
}

// ParseLevel parses a string log level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
