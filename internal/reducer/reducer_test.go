package reducer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/chime/internal/diag"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/session"
)

type recorder struct {
	mu     sync.Mutex
	kinds  []event.Kind
	allows func(event.Kind) bool
}

func (r *recorder) Forward(kind event.Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	return r.allows == nil || r.allows(kind)
}

func (r *recorder) got() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Kind(nil), r.kinds...)
}

func snapshot(errs, warns int) diag.Snapshot {
	var list []diag.Diagnostic
	for range errs {
		list = append(list, diag.Diagnostic{Severity: diag.SeverityError})
	}
	for range warns {
		list = append(list, diag.Diagnostic{Severity: diag.SeverityWarning})
	}
	list = append(list, diag.Diagnostic{Severity: diag.SeverityHint})
	return diag.Snapshot{"file:///main.go": list}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		prev     session.State
		errors   int
		warnings int
		want     []event.Kind
	}{
		{"zero to zero", session.State{}, 0, 0, nil},
		{"increase from zero baseline", session.State{}, 1, 0, []event.Kind{event.ErrorIncrease}},
		{"large increase fires once", session.State{PreviousErrors: 2}, 40, 0, []event.Kind{event.ErrorIncrease}},
		{"decrease", session.State{PreviousErrors: 5}, 2, 0, []event.Kind{event.ErrorDecrease}},
		{"decrease to zero", session.State{PreviousErrors: 5}, 0, 0, []event.Kind{event.ErrorDecrease}},
		{"unchanged errors", session.State{PreviousErrors: 3}, 3, 0, nil},
		{"warning from zero", session.State{}, 0, 3, []event.Kind{event.Warning}},
		{"warning decrease is silent", session.State{PreviousWarnings: 3}, 0, 1, nil},
		{"warning unchanged is silent", session.State{PreviousWarnings: 1}, 0, 1, nil},
		{"warning grows again", session.State{PreviousWarnings: 1}, 0, 2, []event.Kind{event.Warning}},
		{"warnings to zero", session.State{PreviousWarnings: 4}, 0, 0, nil},
		{
			"error and warning in one pass",
			session.State{PreviousErrors: 1, PreviousWarnings: 1},
			2, 2,
			[]event.Kind{event.ErrorIncrease, event.Warning},
		},
		{
			"error decrease with warning increase",
			session.State{PreviousErrors: 4, PreviousWarnings: 0},
			1, 6,
			[]event.Kind{event.ErrorDecrease, event.Warning},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.prev, tc.errors, tc.warnings))
		})
	}
}

func TestReduceCommitsEvenWithoutEvents(t *testing.T) {
	tr := session.NewTracker()
	tr.Commit(3, 5)
	out := &recorder{}
	r := New(tr, out)

	kinds := r.Reduce(snapshot(3, 2))
	assert.Empty(t, kinds)
	assert.Empty(t, out.got())
	assert.Equal(t, session.State{PreviousErrors: 3, PreviousWarnings: 2}, tr.Snapshot())
}

func TestReduceWarningSequence(t *testing.T) {
	tr := session.NewTracker()
	out := &recorder{}
	r := New(tr, out)

	assert.Equal(t, []event.Kind{event.Warning}, r.Reduce(snapshot(0, 3)))
	assert.Empty(t, r.Reduce(snapshot(0, 1)))
	assert.Empty(t, r.Reduce(snapshot(0, 1)))
	assert.Equal(t, []event.Kind{event.Warning}, r.Reduce(snapshot(0, 2)))

	assert.Equal(t, []event.Kind{event.Warning, event.Warning}, out.got())
}

func TestReduceIsIdempotentForSameSnapshot(t *testing.T) {
	r := New(session.NewTracker(), &recorder{})
	snap := snapshot(4, 2)

	assert.Equal(t, []event.Kind{event.ErrorIncrease, event.Warning}, r.Reduce(snap))
	assert.Empty(t, r.Reduce(snap))
}

func TestReduceForwardsInDerivedOrder(t *testing.T) {
	out := &recorder{}
	r := New(session.NewTracker(), out)

	r.Reduce(snapshot(1, 1))
	r.Reduce(snapshot(0, 2))

	assert.Equal(t, []event.Kind{
		event.ErrorIncrease, event.Warning,
		event.ErrorDecrease, event.Warning,
	}, out.got())
}

func TestReduceForwardsEvenIfGateMutes(t *testing.T) {
	tr := session.NewTracker()
	out := &recorder{allows: func(event.Kind) bool { return false }}
	r := New(tr, out)

	kinds := r.Reduce(snapshot(2, 0))
	assert.Equal(t, []event.Kind{event.ErrorIncrease}, kinds)
	assert.Equal(t, session.State{PreviousErrors: 2}, tr.Snapshot())
}

func TestReduceWithFetchError(t *testing.T) {
	tr := session.NewTracker()
	tr.Commit(1, 1)
	r := New(tr, &recorder{})

	_, err := r.ReduceWith(func() (diag.Snapshot, error) {
		return nil, errors.New("host gone")
	})
	require.Error(t, err)
	assert.Equal(t, session.State{PreviousErrors: 1, PreviousWarnings: 1}, tr.Snapshot())
}

func TestReduceBackToBackPassesChain(t *testing.T) {
	tr := session.NewTracker()
	r := New(tr, &recorder{})

	r.Reduce(snapshot(2, 1))
	prevErrs, prevWarns := tr.Read()
	assert.Equal(t, 2, prevErrs)
	assert.Equal(t, 1, prevWarns)

	kinds := r.Reduce(snapshot(1, 1))
	assert.Equal(t, []event.Kind{event.ErrorDecrease}, kinds)
}

// Concurrent passes with rising snapshots: every pass must observe a
// distinct baseline, so the number of ErrorIncrease events equals the number
// of distinct rising edges, never more.
func TestReduceConcurrentPassesDoNotDoubleFire(t *testing.T) {
	tr := session.NewTracker()
	out := &recorder{}
	r := New(tr, out)

	const passes = 50
	var wg sync.WaitGroup
	for range passes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Reduce(snapshot(1, 0))
		}()
	}
	wg.Wait()

	assert.Equal(t, []event.Kind{event.ErrorIncrease}, out.got())
	assert.Equal(t, session.State{PreviousErrors: 1}, tr.Snapshot())
}

func TestReduceWithSerializesFetchAndCommit(t *testing.T) {
	tr := session.NewTracker()
	r := New(tr, &recorder{})

	var mu sync.Mutex
	next := 0
	fetch := func() (diag.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return snapshot(next, 0), nil
	}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.ReduceWith(fetch)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, session.State{PreviousErrors: 20}, tr.Snapshot())
}
