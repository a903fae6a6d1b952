// Package engine wires host notifications to the reducer and classifier and
// routes every derived event through the gate to the sink.
//
// host notification → {reducer | classifier} → gate → sink
//
// The engine performs no I/O of its own beyond asking the host for a
// diagnostic snapshot and the config source for the current settings.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/diag"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/gate"
	"github.com/alexander-akhmetov/chime/internal/outcome"
	"github.com/alexander-akhmetov/chime/internal/reducer"
	"github.com/alexander-akhmetov/chime/internal/session"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

// Host supplies the full diagnostic snapshot on demand.
type Host interface {
	Snapshot(ctx context.Context) (diag.Snapshot, error)
}

// HostFunc adapts a function to Host.
type HostFunc func(ctx context.Context) (diag.Snapshot, error)

// Snapshot implements Host.
func (f HostFunc) Snapshot(ctx context.Context) (diag.Snapshot, error) { return f(ctx) }

// ConfigSource is read on every gate decision and on config change.
type ConfigSource interface {
	gate.ConfigSource
	SoundSettings() sound.Settings
}

// Applier is implemented by sinks that hold global enabled/volume state.
type Applier interface {
	Apply(sound.Settings)
}

// Engine is one live session.
type Engine struct {
	host    Host
	config  ConfigSource
	sink    sound.Sink
	tracker *session.Tracker
	gate    *gate.Gate

	reducer    *reducer.Reducer
	classifier *outcome.Classifier
	manual     *observed

	obsMu     sync.RWMutex
	observers []event.Handler

	now func() time.Time
}

// New creates an engine with a fresh {0, 0} session state.
func New(host Host, config ConfigSource, sink sound.Sink) *Engine {
	e := &Engine{
		host:    host,
		config:  config,
		sink:    sink,
		tracker: session.NewTracker(),
		now:     time.Now,
	}
	e.gate = gate.New(config, sink)
	e.reducer = reducer.New(e.tracker, &observed{e: e, origin: event.OriginDiagnostics})
	e.classifier = outcome.NewSplit(
		&observed{e: e, origin: event.OriginShell},
		&observed{e: e, origin: event.OriginTask},
	)
	e.manual = &observed{e: e, origin: event.OriginManual}
	return e
}

// Subscribe registers h to receive every derived event after the gate
// decision, muted or not. Handlers run on the notifying goroutine and must
// not block.
func (e *Engine) Subscribe(h event.Handler) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, h)
}

// OnDiagnosticsChanged pulls a fresh snapshot from the host and runs one
// reduction pass. A host error aborts the pass without touching state.
func (e *Engine) OnDiagnosticsChanged(ctx context.Context) ([]event.Kind, error) {
	kinds, err := e.reducer.ReduceWith(func() (diag.Snapshot, error) {
		return e.host.Snapshot(ctx)
	})
	if err != nil {
		debug.Logf("engine: diagnostics snapshot failed: %v", err)
		return nil, fmt.Errorf("get diagnostic snapshot: %w", err)
	}
	return kinds, nil
}

// OnShellCommandCompleted classifies an interactive shell command. A nil
// exit code produces no event.
func (e *Engine) OnShellCommandCompleted(exitCode *int) (event.Kind, bool) {
	return e.classifier.Shell(exitCode)
}

// OnTaskCompleted classifies a managed task.
func (e *Engine) OnTaskCompleted(exitCode int) (event.Kind, bool) {
	return e.classifier.Task(exitCode)
}

// OnConfigChanged re-applies volume and the global enabled switch to the
// sink.
func (e *Engine) OnConfigChanged() {
	a, ok := e.sink.(Applier)
	if !ok {
		return
	}
	s := e.config.SoundSettings()
	a.Apply(s)
	debug.Logf("engine: config applied, enabled=%t volume=%.2f", s.Enabled, s.Volume)
}

// OnSessionReset returns the session to the {0, 0} baseline.
func (e *Engine) OnSessionReset() {
	e.tracker.Reset()
	debug.Logf("engine: session reset")
}

// Play sends kind through the gate as a manual event.
func (e *Engine) Play(kind event.Kind) bool {
	return e.manual.Forward(kind)
}

// State returns the current session counts.
func (e *Engine) State() session.State {
	return e.tracker.Snapshot()
}

func (e *Engine) notify(ev event.Event) {
	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()
	for _, h := range observers {
		h(ev)
	}
}

// observed forwards through the gate and reports the decision to observers.
type observed struct {
	e      *Engine
	origin event.Origin
}

func (o *observed) Forward(kind event.Kind) bool {
	forwarded := o.e.gate.Forward(kind)
	o.e.notify(event.Event{
		Kind:   kind,
		Origin: o.origin,
		Muted:  !forwarded,
		At:     o.e.now(),
	})
	return forwarded
}
