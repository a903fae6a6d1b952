// Package gate is the single chokepoint every derived event passes through
// on its way to the sink.
package gate

import (
	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/event"
)

// Config is the gate-relevant view of the user configuration.
type Config struct {
	GlobalEnabled bool
	Kinds         map[event.Kind]bool
}

// Enabled reports whether kind may sound. Unset kinds default to true.
func (c Config) Enabled(kind event.Kind) bool {
	on, ok := c.Kinds[kind]
	return !ok || on
}

// DefaultConfig enables everything.
func DefaultConfig() Config {
	kinds := make(map[event.Kind]bool, len(event.AllKinds()))
	for _, k := range event.AllKinds() {
		kinds[k] = true
	}
	return Config{GlobalEnabled: true, Kinds: kinds}
}

// ConfigSource supplies the current configuration. It is called on every
// check and must not fail; read problems are reported as DefaultConfig.
type ConfigSource interface {
	GateConfig() Config
}

// ConfigFunc adapts a function to ConfigSource.
type ConfigFunc func() Config

// GateConfig implements ConfigSource.
func (f ConfigFunc) GateConfig() Config { return f() }

// Sink renders an event. Implementations must not block or panic.
type Sink interface {
	Play(kind event.Kind)
}

// Gate decides per kind whether an event reaches the sink. The global
// enabled switch is the sink's concern, not the gate's.
type Gate struct {
	config ConfigSource
	sink   Sink
}

// New creates a gate reading from config and forwarding to sink.
func New(config ConfigSource, sink Sink) *Gate {
	return &Gate{config: config, sink: sink}
}

// ShouldForward re-reads the configuration and checks the per-kind flag.
func (g *Gate) ShouldForward(kind event.Kind) bool {
	if g.config.GateConfig().Enabled(kind) {
		return true
	}
	debug.Logf("gate: %s suppressed by config", kind)
	return false
}

// Forward plays kind if the gate allows it and reports whether it did.
func (g *Gate) Forward(kind event.Kind) bool {
	if !g.ShouldForward(kind) {
		return false
	}
	g.sink.Play(kind)
	return true
}
