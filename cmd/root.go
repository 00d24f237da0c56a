// Package cmd implements the CLI command structure for threadrun.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dkozlow/threadrun/internal/config"
	"github.com/dkozlow/threadrun/internal/logging"
	"github.com/dkozlow/threadrun/internal/plan"
	"github.com/dkozlow/threadrun/internal/spawn"
	"github.com/dkozlow/threadrun/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the threadrun CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("threadrun", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand; plain "threadrun" runs the countdown.
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand spawns the workers and joins them.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if err := config.ParseCommandFlags(cfg, "threadrun run", args); err != nil {
		return err
	}
	logger := newLogger(cfg)

	roster, err := buildRoster(cfg, os.Stdout, logger)
	if err != nil {
		return err
	}

	launcher := spawn.New(roster, spawn.WithLogger(logger))

	if cfg.LogDir != "" {
		recorder, err := logging.NewRecorder(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("creating run log: %w", err)
		}
		defer recorder.Close()
		logger.Debug("recording run", "path", recorder.LogPath)
		return runRecorded(ctx, launcher, recorder, logger)
	}

	return launcher.Run(ctx)
}

// runRecorded runs the launcher while mirroring status events into the
// per-run JSONL log.
func runRecorded(ctx context.Context, launcher *spawn.Launcher, recorder *logging.Recorder, logger *log.Logger) error {
	statusCh := make(chan spawn.Status, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range statusCh {
			ev := logging.Event{WorkerID: s.WorkerID, Message: s.Message}
			switch {
			case s.Err != nil:
				ev.Type = "error"
				ev.Message = s.Err.Error()
			case s.WorkerID == 0:
				ev.Type = "phase"
			case s.State.Terminal():
				ev.Type = "finished"
			default:
				ev.Type = "tick"
			}
			if err := recorder.Record(ev); err != nil {
				logger.Warn("recording event", "err", err)
			}
		}
	}()

	err := launcher.RunWithStatus(ctx, statusCh)
	<-done
	return err
}

// tuiCommand runs the countdown behind a live terminal view. The contractual
// stdout lines are suppressed while the TUI owns the terminal.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if err := config.ParseCommandFlags(cfg, "threadrun tui", args); err != nil {
		return err
	}
	roster, err := buildRoster(cfg, io.Discard, newLogger(cfg))
	if err != nil {
		return err
	}

	launcher := spawn.New(roster,
		spawn.WithOutput(io.Discard),
		spawn.WithErrOutput(io.Discard),
	)
	return ui.RunTUI(ctx, launcher)
}

// tailCommand dumps the most recent run log.
func tailCommand(cfg *config.Config, args []string) error {
	if err := config.ParseCommandFlags(cfg, "threadrun tail", args); err != nil {
		return err
	}
	if cfg.LogDir == "" {
		return fmt.Errorf("no log dir configured; set log_dir or --log-dir")
	}
	path, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("No runs logged yet")
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

func versionCommand() error {
	fmt.Printf("threadrun %s %s/%s\n", Version, runtime.GOOS, runtime.GOARCH)
	return nil
}

// buildRoster builds the worker roster from the plan file when one is
// configured, otherwise from the configured worker count.
func buildRoster(cfg *config.Config, out io.Writer, logger *log.Logger) ([]spawn.Worker, error) {
	if cfg.PlanFile == "" {
		return spawn.Roster(cfg.Workers, cfg.Iterations, cfg.Delay(), out), nil
	}

	p, err := plan.Load(cfg.PlanFile)
	if err != nil {
		return nil, err
	}

	if cfg.SchemaFile != "" {
		result := p.ValidateSchema(cfg.SchemaFile)
		for _, w := range result.Warnings {
			logger.Warn(w)
		}
		if !result.Valid {
			for _, e := range result.Errors {
				logger.Error(e.Error())
			}
			return nil, fmt.Errorf("plan file %s failed schema validation", cfg.PlanFile)
		}
	}

	return p.Roster(cfg.Iterations, cfg.Delay(), out), nil
}

func newLogger(cfg *config.Config) *log.Logger {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logging.NewConsoleFromConfig(level, cfg.LogFormat, cfg.LogTimestamps)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `threadrun - spawn countdown workers and wait for them

Usage:
  threadrun [flags]            Run the countdown (default)
  threadrun run [flags]        Run the countdown
  threadrun tui [flags]        Run with a live terminal view
  threadrun tail [flags]       Print the most recent run log
  threadrun version            Show version
  threadrun help               Show this help

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
