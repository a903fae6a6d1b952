// Package event defines the closed set of sound event kinds derived from
// environment signals, plus the observation record handed to observers
// (feed, dashboard, logs) after the gate has made its decision.
package event

import (
	"fmt"
	"time"
)

// Kind identifies a sound event. The set is closed.
type Kind int

const (
	// Success is a command or task that exited with code 0.
	Success Kind = iota
	// Fail is a command or task that exited with a non-zero code.
	Fail
	// Warning is a growing, positive warning count.
	Warning
	// ErrorIncrease is an error count above the last observed count.
	ErrorIncrease
	// ErrorDecrease is an error count below a positive last observed count.
	ErrorDecrease
)

var names = [...]string{
	Success:       "success",
	Fail:          "fail",
	Warning:       "warning",
	ErrorIncrease: "error_increase",
	ErrorDecrease: "error_decrease",
}

// String returns the stable config/wire name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return names[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(names)
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{Success, Fail, Warning, ErrorIncrease, ErrorDecrease}
}

// ParseKind maps a config/wire name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range names {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}

// Origin names the signal a kind was derived from.
type Origin string

const (
	OriginDiagnostics Origin = "diagnostics"
	OriginShell       Origin = "shell"
	OriginTask        Origin = "task"
	OriginManual      Origin = "manual"
)

// Event is one derived kind together with what happened to it.
type Event struct {
	Kind   Kind
	Origin Origin
	Muted  bool // suppressed by the gate
	At     time.Time
}

// Handler is a callback that receives observed events.
type Handler func(Event)
