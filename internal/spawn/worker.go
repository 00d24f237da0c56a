package spawn

import (
	"fmt"
	"io"
	"time"
)

// State is the lifecycle state of a worker.
type State string

const (
	StateCreated  State = "created"
	StateRunning  State = "running"
	StateFinished State = "finished"
)

// Terminal reports whether the state is terminal.
func (s State) Terminal() bool {
	return s == StateFinished
}

// Worker is a single countdown worker. Each worker owns its identifier by
// value; nothing is shared with the launcher after spawn.
type Worker struct {
	ID         int
	Label      string
	Iterations int
	Delay      time.Duration
	Out        io.Writer
}

// Status is a progress report emitted by a running worker or the launcher.
type Status struct {
	WorkerID  int
	State     State
	Remaining int
	Message   string
	Err       error
}

// run executes the countdown loop. It prints one running line per iteration,
// sleeps for the configured delay, and prints a finished line on the way out.
// The finished line is written before the worker's handle completes.
func (w Worker) run(notify func(Status)) {
	for i := 0; i < w.Iterations; i++ {
		fmt.Fprintf(w.Out, "Thread: %d running\n", w.ID)
		notify(Status{WorkerID: w.ID, State: StateRunning, Remaining: w.Iterations - i})
		time.Sleep(w.Delay)
	}
	fmt.Fprintf(w.Out, "Thread: %d finished\n", w.ID)
	notify(Status{WorkerID: w.ID, State: StateFinished})
}

// Roster builds n workers with identifiers 1..n sharing the same iteration
// count, delay and output writer.
func Roster(n, iterations int, delay time.Duration, out io.Writer) []Worker {
	workers := make([]Worker, 0, n)
	for id := 1; id <= n; id++ {
		workers = append(workers, Worker{
			ID:         id,
			Iterations: iterations,
			Delay:      delay,
			Out:        out,
		})
	}
	return workers
}
