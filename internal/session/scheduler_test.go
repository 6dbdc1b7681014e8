package session

import (
	"sync"
	"testing"
	"time"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/models"
)

// waitDone waits for a run to finish, failing the test on timeout.
func waitDone(t *testing.T, r *Run) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not complete in time")
	}
}

func snapshotWith(t *testing.T, ids ...string) *circuit.Snapshot {
	t.Helper()
	c := circuit.New("test")
	for _, id := range ids {
		if err := c.AddNeuron(models.Neuron{ID: id, Type: models.NeuronTypeInterneuron}); err != nil {
			t.Fatalf("AddNeuron(%s): %v", id, err)
		}
	}
	return c.Snapshot()
}

func TestSubmitExecutesAfterWindow(t *testing.T) {
	var mu sync.Mutex
	var ran []*circuit.Snapshot

	s := NewScheduler(10*time.Millisecond, func(snap *circuit.Snapshot) {
		mu.Lock()
		ran = append(ran, snap)
		mu.Unlock()
	})

	snap := snapshotWith(t, "AVAL")
	r := s.Submit(snap)
	waitDone(t, r)

	if !r.Executed() {
		t.Error("run not executed")
	}
	if r.Superseded() {
		t.Error("run superseded without a later submission")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(ran) != 1 || ran[0] != snap {
		t.Errorf("RunFunc saw %d snapshots", len(ran))
	}
}

func TestLaterSubmissionSupersedes(t *testing.T) {
	var mu sync.Mutex
	var ran []*circuit.Snapshot

	s := NewScheduler(50*time.Millisecond, func(snap *circuit.Snapshot) {
		mu.Lock()
		ran = append(ran, snap)
		mu.Unlock()
	})

	first := s.Submit(snapshotWith(t, "AVAL"))
	second := s.Submit(snapshotWith(t, "AVAL", "VA1"))

	waitDone(t, first)
	waitDone(t, second)

	if !first.Superseded() {
		t.Error("first run not superseded")
	}
	if first.Executed() {
		t.Error("superseded run executed anyway")
	}
	if !second.Executed() {
		t.Error("last submission did not execute")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(ran) != 1 || ran[0] != second.Snapshot {
		t.Errorf("expected only the last snapshot to run, got %d runs", len(ran))
	}
}

func TestRunTokensAreUnique(t *testing.T) {
	s := NewScheduler(0, func(*circuit.Snapshot) {})

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		r := s.Submit(snapshotWith(t, "AVAL"))
		if seen[r.Token] {
			t.Fatalf("duplicate run token %s", r.Token)
		}
		seen[r.Token] = true
		waitDone(t, r)
	}
}

func TestCancel(t *testing.T) {
	executed := make(chan struct{}, 1)
	s := NewScheduler(50*time.Millisecond, func(*circuit.Snapshot) {
		executed <- struct{}{}
	})

	r := s.Submit(snapshotWith(t, "AVAL"))
	s.Cancel()
	waitDone(t, r)

	if !r.Superseded() {
		t.Error("cancelled run not superseded")
	}
	select {
	case <-executed:
		t.Error("cancelled run executed")
	case <-time.After(100 * time.Millisecond):
	}

	// Cancel with nothing pending is a no-op.
	s.Cancel()
}
