package spawn

import (
	"errors"
	"testing"
	"time"
)

func TestRoster(t *testing.T) {
	t.Run("assigns identifiers 1..N", func(t *testing.T) {
		workers := Roster(5, 2, time.Second, &syncBuffer{})
		if len(workers) != 5 {
			t.Fatalf("got %d workers, want 5", len(workers))
		}
		for i, w := range workers {
			if w.ID != i+1 {
				t.Errorf("worker %d has ID %d, want %d", i, w.ID, i+1)
			}
			if w.Iterations != 2 || w.Delay != time.Second {
				t.Errorf("worker %d did not inherit settings: %+v", i, w)
			}
		}
	})

	t.Run("zero count yields empty roster", func(t *testing.T) {
		if workers := Roster(0, 5, time.Second, &syncBuffer{}); len(workers) != 0 {
			t.Errorf("got %d workers, want 0", len(workers))
		}
	})
}

func TestGoSpawner(t *testing.T) {
	t.Run("wait returns after the worker finished", func(t *testing.T) {
		out := &syncBuffer{}
		h, err := NewGoSpawner().Spawn(Worker{ID: 1, Iterations: 1, Out: out}, nil)
		if err != nil {
			t.Fatalf("Spawn returned error: %v", err)
		}
		h.Wait()

		lines := out.Lines()
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
		}
		if lines[1] != "Thread: 1 finished" {
			t.Errorf("last line = %q, want finished line", lines[1])
		}
	})

	t.Run("wait on a finished worker returns immediately", func(t *testing.T) {
		h, err := NewGoSpawner().Spawn(Worker{ID: 7, Iterations: 0, Out: &syncBuffer{}}, nil)
		if err != nil {
			t.Fatalf("Spawn returned error: %v", err)
		}
		h.Wait()

		start := time.Now()
		h.Wait()
		if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
			t.Errorf("second Wait took %v, want immediate return", elapsed)
		}
		if h.ID() != 7 {
			t.Errorf("handle ID = %d, want 7", h.ID())
		}
	})
}

func TestFaultSpawner(t *testing.T) {
	t.Run("passes through below the fault point", func(t *testing.T) {
		fs := &FaultSpawner{Inner: NewGoSpawner(), FailID: 3}
		h, err := fs.Spawn(Worker{ID: 1, Iterations: 0, Out: &syncBuffer{}}, nil)
		if err != nil {
			t.Fatalf("Spawn returned error below fault point: %v", err)
		}
		h.Wait()
	})

	t.Run("fails with a default error when none is given", func(t *testing.T) {
		fs := &FaultSpawner{Inner: NewGoSpawner(), FailID: 1}
		if _, err := fs.Spawn(Worker{ID: 1, Out: &syncBuffer{}}, nil); err == nil {
			t.Fatal("expected injected fault")
		}
	})
}

func TestSpawnError(t *testing.T) {
	inner := errors.New("resource exhausted")
	err := &SpawnError{WorkerID: 4, Err: inner}

	if got := err.Error(); got != "spawn worker 4: resource exhausted" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}
}

func TestState_Terminal(t *testing.T) {
	if StateCreated.Terminal() || StateRunning.Terminal() {
		t.Error("non-terminal states reported terminal")
	}
	if !StateFinished.Terminal() {
		t.Error("finished state not reported terminal")
	}
}
