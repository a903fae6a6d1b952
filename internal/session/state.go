// Package session holds the cross-event memory of a live session: the error
// and warning counts observed at the end of the last reduction pass.
package session

import "sync"

// State is the counts observed at the end of the most recently completed
// reduction pass.
type State struct {
	PreviousErrors   int `json:"previous_errors"`
	PreviousWarnings int `json:"previous_warnings"`
}

// Tracker is the single owner of State. The zero value is ready to use and
// starts at {0, 0}.
type Tracker struct {
	mu    sync.Mutex
	state State
}

// NewTracker returns a tracker initialized to {0, 0}.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Read returns the previous error and warning counts.
func (t *Tracker) Read() (prevErrors, prevWarnings int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.PreviousErrors, t.state.PreviousWarnings
}

// Commit overwrites both counts unconditionally.
func (t *Tracker) Commit(errors, warnings int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{PreviousErrors: errors, PreviousWarnings: warnings}
}

// Transition commits the new counts and returns the state they replaced, as
// one step. No other caller can observe or mutate the state in between.
func (t *Tracker) Transition(errors, warnings int) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.state
	t.state = State{PreviousErrors: errors, PreviousWarnings: warnings}
	return prev
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Reset returns the tracker to the {0, 0} baseline.
func (t *Tracker) Reset() {
	t.Commit(0, 0)
}
