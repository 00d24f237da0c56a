package config

import (
	"flag"
	"fmt"
)

// parseFlags defines and parses the global CLI flags onto the config.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("threadrun", flag.ContinueOnError)
	}

	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of workers to spawn")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Countdown iterations per worker")
	fs.IntVar(&cfg.DelaySeconds, "delay", cfg.DelaySeconds, "Seconds between countdown prints")
	fs.StringVar(&cfg.PlanFile, "plan", cfg.PlanFile, "Path to a JSON worker plan file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to a JSON schema for the plan file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for per-run JSONL event logs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostic log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostic log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in diagnostics")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug diagnostics")

	return fs.Parse(args)
}

// ParseCommandFlags applies a subcommand's flags on top of an already
// loaded config. Subcommands accept the same flags as the global parse;
// positional arguments are rejected.
func ParseCommandFlags(cfg *Config, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if err := parseFlags(cfg, fs, args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return finalizeConfig(cfg)
}
