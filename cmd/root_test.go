// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate keeps real config files and the working directory out of tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("shows help with --help flag", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"-h"}); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--version"}); err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
	})

	t.Run("shows version with subcommand", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"version"}); err != nil {
			t.Errorf("expected no error with version subcommand, got %v", err)
		}
	})

	t.Run("rejects unknown command", func(t *testing.T) {
		isolate(t)
		err := Run(ctx, []string{"bogus"})
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected unknown command error, got %v", err)
		}
	})

	t.Run("rejects invalid config values", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--workers", "-3"}); err == nil {
			t.Error("expected config validation error")
		}
	})
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("completes with zero workers", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--workers", "0"}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("completes with workers and zero delay", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--workers", "2", "--iterations", "1", "--delay", "0"}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("honors flags placed after the subcommand", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"run", "--workers", "0"}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		// A bad value after the subcommand must be seen, not dropped.
		if err := Run(ctx, []string{"run", "--workers", "-1"}); err == nil {
			t.Error("expected validation error for flags after subcommand")
		}
	})

	t.Run("rejects trailing positional arguments", func(t *testing.T) {
		isolate(t)
		err := Run(ctx, []string{"run", "extra"})
		if err == nil || !strings.Contains(err.Error(), "unexpected argument") {
			t.Errorf("expected unexpected argument error, got %v", err)
		}
	})

	t.Run("records a run log when log dir is set", func(t *testing.T) {
		isolate(t)
		logDir := filepath.Join(t.TempDir(), "logs")
		err := Run(ctx, []string{"--workers", "1", "--iterations", "1", "--delay", "0", "--log-dir", logDir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries, err := os.ReadDir(logDir)
		if err != nil {
			t.Fatalf("reading log dir: %v", err)
		}
		found := false
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".jsonl") {
				found = true
			}
		}
		if !found {
			t.Error("no run log written")
		}
	})

	t.Run("uses a plan file when configured", func(t *testing.T) {
		isolate(t)
		planPath := filepath.Join(t.TempDir(), "plan.json")
		content := `{"workers": [{"id": 1, "label": "alpha"}, {"id": 2}]}`
		if err := os.WriteFile(planPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing plan: %v", err)
		}
		err := Run(ctx, []string{"--plan", planPath, "--iterations", "1", "--delay", "0"})
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("rejects a broken plan file", func(t *testing.T) {
		isolate(t)
		planPath := filepath.Join(t.TempDir(), "plan.json")
		content := `{"workers": [{"id": 1}, {"id": 1}]}`
		if err := os.WriteFile(planPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing plan: %v", err)
		}
		err := Run(ctx, []string{"--plan", planPath, "--delay", "0"})
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Errorf("expected duplicate id error, got %v", err)
		}
	})
}

func TestTailCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a log dir", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"tail"}); err == nil {
			t.Error("expected error without log dir")
		}
	})

	t.Run("handles an empty log dir", func(t *testing.T) {
		isolate(t)
		if err := Run(ctx, []string{"--log-dir", t.TempDir(), "tail"}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
