// Package plan loads and validates optional worker plan files.
//
// A plan file is a JSON document describing the worker roster: one entry per
// worker with its identifier and optional per-worker overrides. When a plan
// is provided it replaces the configured worker count.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dkozlow/threadrun/internal/spawn"
)

// Entry describes a single worker in a plan file.
type Entry struct {
	ID           int    `json:"id"`
	Label        string `json:"label,omitempty"`
	Iterations   *int   `json:"iterations,omitempty"`
	DelaySeconds *int   `json:"delay_seconds,omitempty"`
}

// Plan is the parsed contents of a plan file.
type Plan struct {
	Workers []Entry `json:"workers"`
}

// Load reads and parses a plan file, then checks its structural invariants.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the structural invariants of a plan: worker identifiers
// must be exactly 1..N with no duplicates or gaps, and per-worker overrides
// must be non-negative.
func (p *Plan) Validate() error {
	seen := make(map[int]bool, len(p.Workers))
	for _, e := range p.Workers {
		if e.ID < 1 {
			return fmt.Errorf("worker id must be >= 1, got %d", e.ID)
		}
		if e.ID > len(p.Workers) {
			return fmt.Errorf("worker id %d out of range 1..%d", e.ID, len(p.Workers))
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate worker id %d", e.ID)
		}
		seen[e.ID] = true
		if e.Iterations != nil && *e.Iterations < 0 {
			return fmt.Errorf("worker %d: iterations must be >= 0, got %d", e.ID, *e.Iterations)
		}
		if e.DelaySeconds != nil && *e.DelaySeconds < 0 {
			return fmt.Errorf("worker %d: delay_seconds must be >= 0, got %d", e.ID, *e.DelaySeconds)
		}
	}
	return nil
}

// Roster builds the worker roster from the plan, ordered by identifier.
// Entries without overrides inherit the given iteration count and delay.
func (p *Plan) Roster(iterations int, delay time.Duration, out io.Writer) []spawn.Worker {
	workers := make([]spawn.Worker, len(p.Workers))
	for _, e := range p.Workers {
		w := spawn.Worker{
			ID:         e.ID,
			Label:      e.Label,
			Iterations: iterations,
			Delay:      delay,
			Out:        out,
		}
		if e.Iterations != nil {
			w.Iterations = *e.Iterations
		}
		if e.DelaySeconds != nil {
			w.Delay = time.Duration(*e.DelaySeconds) * time.Second
		}
		// IDs are validated to be exactly 1..N, so this indexing is safe.
		workers[e.ID-1] = w
	}
	return workers
}
