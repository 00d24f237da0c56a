package spawn

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Launcher spawns a roster of workers in identifier order and joins them in
// the same order. Join order does not imply completion order; waiting on a
// worker that already finished returns immediately.
type Launcher struct {
	workers []Worker
	out     io.Writer
	errOut  io.Writer
	spawner Spawner
	logger  *log.Logger
}

// Option configures the launcher.
type Option func(*Launcher)

// WithOutput sets the writer for the launcher's own status lines.
func WithOutput(w io.Writer) Option {
	return func(l *Launcher) {
		l.out = w
	}
}

// WithErrOutput sets the writer for spawn-failure diagnostics.
func WithErrOutput(w io.Writer) Option {
	return func(l *Launcher) {
		l.errOut = w
	}
}

// WithSpawner overrides the spawner backing the workers.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) {
		l.spawner = s
	}
}

// WithLogger sets the diagnostic logger. Diagnostics are emitted at debug
// level so the contractual output stays clean by default.
func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// New creates a launcher over the given roster.
func New(workers []Worker, opts ...Option) *Launcher {
	l := &Launcher{
		workers: workers,
		out:     os.Stdout,
		errOut:  os.Stderr,
		spawner: NewGoSpawner(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run spawns every worker and blocks until all of them have finished.
//
// On a spawn failure it writes a diagnostic to the error writer and returns
// a *SpawnError immediately, without joining workers that already started.
// The context is observed only between spawns; running workers cannot be
// cancelled and the join phase blocks without timeout.
func (l *Launcher) Run(ctx context.Context) error {
	return l.run(ctx, nil)
}

// RunWithStatus is Run with progress reporting: worker ticks and launcher
// phase changes are sent on statusCh, which is closed when the run ends.
// Workers abandoned by a spawn failure may still be running when the channel
// closes; their remaining events are dropped.
func (l *Launcher) RunWithStatus(ctx context.Context, statusCh chan<- Status) error {
	sink := &statusSink{ch: statusCh}
	defer sink.close()
	return l.run(ctx, sink.send)
}

// statusSink serializes status sends so that abandoned workers cannot write
// to a closed channel.
type statusSink struct {
	mu     sync.Mutex
	ch     chan<- Status
	closed bool
}

func (s *statusSink) send(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ch <- st
}

func (s *statusSink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	close(s.ch)
}

func (l *Launcher) run(ctx context.Context, notify func(Status)) error {
	if notify == nil {
		notify = func(Status) {}
	}

	fmt.Fprintln(l.out, "Creating threads")

	handles := make([]*Handle, 0, len(l.workers))
	for _, w := range l.workers {
		if err := ctx.Err(); err != nil {
			notify(Status{WorkerID: w.ID, Err: err})
			return err
		}
		h, err := l.spawner.Spawn(w, notify)
		if err != nil {
			spawnErr := &SpawnError{WorkerID: w.ID, Err: err}
			fmt.Fprintf(l.errOut, "error creating thread: %v\n", spawnErr)
			l.logger.Error("spawn failed", "id", w.ID, "err", err)
			notify(Status{WorkerID: w.ID, Err: spawnErr})
			// Fire-and-abandon: workers that already started are not
			// joined; process exit reclaims them.
			return spawnErr
		}
		l.logger.Debug("spawned worker", "id", w.ID, "iterations", w.Iterations)
		handles = append(handles, h)
	}

	fmt.Fprintln(l.out, "main(): threads created, waiting for finish...")
	notify(Status{State: StateRunning, Message: "waiting for workers"})

	for _, h := range handles {
		h.Wait()
		l.logger.Debug("joined worker", "id", h.ID())
	}

	fmt.Fprintln(l.out, "All threads finished")
	notify(Status{State: StateFinished, Message: "all workers finished"})
	return nil
}

// Workers returns the roster the launcher was built over.
func (l *Launcher) Workers() []Worker {
	return l.workers
}
