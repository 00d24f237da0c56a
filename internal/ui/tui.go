// Package ui provides an optional terminal interface for watching a run.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkozlow/threadrun/internal/spawn"
)

// RunTUI runs the launcher in the background and renders live per-worker
// progress. The launcher must be configured with discarded writers; the TUI
// owns the terminal while it runs.
func RunTUI(ctx context.Context, launcher *spawn.Launcher) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	statusCh := make(chan spawn.Status, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- launcher.RunWithStatus(ctx, statusCh)
	}()

	model := newModel(launcher.Workers(), statusCh)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		// Unblock the launcher goroutine if the user quit early.
		go drain(statusCh)
		<-errCh
		return err
	}

	go drain(statusCh)
	return <-errCh
}

func drain(ch <-chan spawn.Status) {
	for range ch {
	}
}

type model struct {
	workers   []spawn.Worker
	statusCh  <-chan spawn.Status
	remaining map[int]int
	states    map[int]spawn.State
	phase     string
	done      bool
	runErr    error
}

type statusMsg struct {
	status spawn.Status
}

type runDoneMsg struct{}

func newModel(workers []spawn.Worker, statusCh <-chan spawn.Status) *model {
	remaining := make(map[int]int, len(workers))
	states := make(map[int]spawn.State, len(workers))
	for _, w := range workers {
		remaining[w.ID] = w.Iterations
		states[w.ID] = spawn.StateCreated
	}
	return &model{
		workers:   workers,
		statusCh:  statusCh,
		remaining: remaining,
		states:    states,
		phase:     "spawning",
	}
}

func (m *model) Init() tea.Cmd {
	return waitForStatus(m.statusCh)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case statusMsg:
		m.apply(msg.status)
		return m, waitForStatus(m.statusCh)
	case runDoneMsg:
		m.done = true
		return m, nil
	}
	return m, nil
}

func (m *model) apply(s spawn.Status) {
	if s.Err != nil {
		m.runErr = s.Err
		return
	}
	if s.WorkerID == 0 {
		if s.Message != "" {
			m.phase = s.Message
		}
		return
	}
	m.states[s.WorkerID] = s.State
	if s.State == spawn.StateRunning {
		m.remaining[s.WorkerID] = s.Remaining
	} else if s.State.Terminal() {
		m.remaining[s.WorkerID] = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b)

	b.WriteString(fmt.Sprintf("Phase: %s\n\n", m.phase))

	for _, w := range m.workers {
		b.WriteString(formatWorker(w, m.states[w.ID], m.remaining[w.ID]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.runErr != nil {
		b.WriteString("Run failed:\n")
		b.WriteString("  " + m.runErr.Error() + "\n\n")
	} else if m.done {
		b.WriteString("All workers finished.\n\n")
	}

	b.WriteString("Press q to quit\n")
	return b.String()
}

func waitForStatus(ch <-chan spawn.Status) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return runDoneMsg{}
		}
		return statusMsg{status: status}
	}
}

func writeTitle(b *strings.Builder) {
	title := "threadrun"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func formatWorker(w spawn.Worker, state spawn.State, remaining int) string {
	icon := " "
	switch state {
	case spawn.StateRunning:
		icon = ">"
	case spawn.StateFinished:
		icon = "x"
	}

	name := fmt.Sprintf("Thread %d", w.ID)
	if w.Label != "" {
		name = fmt.Sprintf("%s (%s)", name, w.Label)
	}

	if state.Terminal() {
		return fmt.Sprintf("  %s %s finished", icon, name)
	}
	return fmt.Sprintf("  %s %s [%s] %d remaining", icon, name, state, remaining)
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
