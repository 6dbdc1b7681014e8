// Package session schedules engine runs around an editing session. Edits
// arrive in bursts, so re-validation is debounced on a quiescence window,
// and a newly submitted run supersedes any run still pending for the same
// circuit: last submitted wins, partial results are never merged.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matjns/worm-quest-ai-adventure-sub005/internal/circuit"
)

// DefaultWindow is the quiescence window applied when none is configured.
const DefaultWindow = 300 * time.Millisecond

// RunFunc executes the engines over a snapshot. The scheduler guarantees it
// is called at most once per submitted run, never for a superseded one.
type RunFunc func(snap *circuit.Snapshot)

// Run is one scheduled engine invocation. The token identifies the run;
// a later submission invalidates it instead of merging with it.
type Run struct {
	Token    string
	Snapshot *circuit.Snapshot

	timer *time.Timer
	done  chan struct{}

	mu         sync.Mutex
	superseded bool
	executed   bool
}

// Done is closed when the run has either executed or been superseded.
func (r *Run) Done() <-chan struct{} { return r.done }

// Superseded reports whether a later submission invalidated this run.
func (r *Run) Superseded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.superseded
}

// Executed reports whether the run's RunFunc was invoked.
func (r *Run) Executed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.executed
}

// supersede marks the run invalid if it has not started executing.
func (r *Run) supersede() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.executed || r.superseded {
		return
	}
	r.superseded = true
	r.timer.Stop()
	close(r.done)
}

// Scheduler debounces and supersedes runs for a single circuit. Safe for
// concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	window  time.Duration
	run     RunFunc
	current *Run
}

// NewScheduler creates a scheduler with the given quiescence window.
func NewScheduler(window time.Duration, run RunFunc) *Scheduler {
	if window < 0 {
		window = DefaultWindow
	}
	return &Scheduler{window: window, run: run}
}

// Submit schedules a run over the snapshot after the quiescence window,
// superseding any run still pending. The returned Run lets the caller wait
// for completion and observe whether the run survived.
func (s *Scheduler) Submit(snap *circuit.Snapshot) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.supersede()
	}

	r := &Run{
		Token:    uuid.NewString(),
		Snapshot: snap,
		done:     make(chan struct{}),
	}
	r.timer = time.AfterFunc(s.window, func() { s.fire(r) })
	s.current = r
	return r
}

// Cancel supersedes the pending run, if any.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.supersede()
	}
}

// fire executes the run unless it was superseded while waiting.
func (s *Scheduler) fire(r *Run) {
	r.mu.Lock()
	if r.superseded {
		r.mu.Unlock()
		return
	}
	r.executed = true
	r.mu.Unlock()

	s.run(r.Snapshot)
	close(r.done)
}
