// Package host adapts an editor or shell integration to the engine. Hosts
// push per-source diagnostics and completion notices over a unix socket;
// the Workspace keeps the latest list per source so the engine can pull a
// full snapshot after every change.
package host

import (
	"context"
	"sync"

	"github.com/alexander-akhmetov/chime/internal/diag"
)

// Workspace is the latest diagnostic list per source.
type Workspace struct {
	mu      sync.RWMutex
	sources diag.Snapshot
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{sources: make(diag.Snapshot)}
}

// Set replaces the list for source. An empty list removes the source.
func (w *Workspace) Set(source string, list []diag.Diagnostic) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(list) == 0 {
		delete(w.sources, source)
		return
	}
	w.sources[source] = append([]diag.Diagnostic(nil), list...)
}

// Remove drops one source.
func (w *Workspace) Remove(source string) {
	w.Set(source, nil)
}

// Clear drops every source.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sources = make(diag.Snapshot)
}

// Len returns the number of sources with at least one diagnostic.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sources)
}

// Snapshot returns a copy of every known diagnostic. It implements
// engine.Host.
func (w *Workspace) Snapshot(context.Context) (diag.Snapshot, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sources.Clone(), nil
}
