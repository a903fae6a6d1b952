// Package reducer turns full diagnostic snapshots into directional sound
// events by comparing aggregate counts against the previous pass.
package reducer

import (
	"sync"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/diag"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/session"
)

// Forwarder receives derived events in order. *gate.Gate satisfies it.
type Forwarder interface {
	Forward(kind event.Kind) bool
}

// Derive computes the events for a transition from prev to the new counts.
// It holds no state and performs no I/O.
//
// The error transition and the warning transition are evaluated
// independently, so a single pass yields zero, one or two events, always
// error first. Warnings have no decrease event.
func Derive(prev session.State, errors, warnings int) []event.Kind {
	var kinds []event.Kind

	switch {
	case errors > prev.PreviousErrors:
		kinds = append(kinds, event.ErrorIncrease)
	case errors < prev.PreviousErrors && prev.PreviousErrors > 0:
		kinds = append(kinds, event.ErrorDecrease)
	}

	if warnings > 0 && warnings > prev.PreviousWarnings {
		kinds = append(kinds, event.Warning)
	}

	return kinds
}

// Reducer runs reduction passes against a tracker. Passes are serialized:
// read, derive, commit and forward of one pass complete before the next
// pass reads.
type Reducer struct {
	mu      sync.Mutex
	tracker *session.Tracker
	out     Forwarder
}

// New creates a reducer owning no state of its own beyond the tracker handle.
func New(tracker *session.Tracker, out Forwarder) *Reducer {
	return &Reducer{tracker: tracker, out: out}
}

// Reduce runs one pass over a full snapshot and returns the derived events.
// The tracker is updated even when nothing fires.
func (r *Reducer) Reduce(snap diag.Snapshot) []event.Kind {
	errors, warnings := snap.Count()
	return r.apply(errors, warnings)
}

// ReduceWith runs one pass with the snapshot pulled by fetch while the pass
// lock is held, so a later pull can never be committed before an earlier
// one.
func (r *Reducer) ReduceWith(fetch func() (diag.Snapshot, error)) ([]event.Kind, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := fetch()
	if err != nil {
		return nil, err
	}
	errors, warnings := snap.Count()
	return r.passLocked(errors, warnings), nil
}

func (r *Reducer) apply(errors, warnings int) []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passLocked(errors, warnings)
}

func (r *Reducer) passLocked(errors, warnings int) []event.Kind {
	prev := r.tracker.Transition(errors, warnings)
	kinds := Derive(prev, errors, warnings)

	debug.Logf("reducer: errors %d->%d warnings %d->%d events=%v",
		prev.PreviousErrors, errors, prev.PreviousWarnings, warnings, kinds)

	for _, k := range kinds {
		r.out.Forward(k)
	}
	return kinds
}
