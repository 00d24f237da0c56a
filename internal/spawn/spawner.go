package spawn

import "fmt"

// Handle represents a spawned worker. It is used exactly once to wait for
// that worker's completion.
type Handle struct {
	id   int
	done chan struct{}
}

// ID returns the identifier of the worker behind the handle.
func (h *Handle) ID() int {
	return h.id
}

// Wait blocks until the worker has fully terminated. There is no timeout.
// Waiting on an already-finished worker returns immediately.
func (h *Handle) Wait() {
	<-h.done
}

// Spawner starts a worker as an independently scheduled unit of execution.
type Spawner interface {
	Spawn(w Worker, notify func(Status)) (*Handle, error)
}

// goSpawner backs each worker with a goroutine. Spawning a goroutine cannot
// fail, so Spawn always returns a live handle.
type goSpawner struct{}

// NewGoSpawner returns the default goroutine-backed spawner.
func NewGoSpawner() Spawner {
	return goSpawner{}
}

func (goSpawner) Spawn(w Worker, notify func(Status)) (*Handle, error) {
	if notify == nil {
		notify = func(Status) {}
	}
	h := &Handle{id: w.ID, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		w.run(notify)
	}()
	return h, nil
}

// FaultSpawner wraps another spawner and fails once the given worker ID is
// reached. It exists to exercise the launcher's fail-fast path, since the
// goroutine-backed spawner never fails.
type FaultSpawner struct {
	Inner  Spawner
	FailID int
	Err    error
}

func (f *FaultSpawner) Spawn(w Worker, notify func(Status)) (*Handle, error) {
	if w.ID == f.FailID {
		err := f.Err
		if err == nil {
			err = fmt.Errorf("injected spawn fault")
		}
		return nil, err
	}
	return f.Inner.Spawn(w, notify)
}

// SpawnError reports a failure to start a worker.
type SpawnError struct {
	WorkerID int
	Err      error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn worker %d: %v", e.WorkerID, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
