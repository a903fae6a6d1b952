// Package outcome classifies command and task completions by exit code.
package outcome

import (
	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/event"
)

// Forwarder receives the classified event. *gate.Gate satisfies it.
type Forwarder interface {
	Forward(kind event.Kind) bool
}

// Classify maps an exit code to Success (0) or Fail (anything else). A nil
// exit code yields no event; some completion signals carry no status.
func Classify(exitCode *int) (event.Kind, bool) {
	if exitCode == nil {
		return 0, false
	}
	if *exitCode == 0 {
		return event.Success, true
	}
	return event.Fail, true
}

// Classifier routes both completion sources through Classify to the same
// forwarder. It has no mutable state and is safe for concurrent use.
type Classifier struct {
	shell Forwarder
	task  Forwarder
}

// New creates a classifier sending both sources to out.
func New(out Forwarder) *Classifier {
	return &Classifier{shell: out, task: out}
}

// NewSplit creates a classifier with a distinct forwarder per source, so
// callers can tag events with their origin.
func NewSplit(shell, task Forwarder) *Classifier {
	return &Classifier{shell: shell, task: task}
}

// Shell handles an interactive shell command finishing.
func (c *Classifier) Shell(exitCode *int) (event.Kind, bool) {
	return c.classify(c.shell, "shell", exitCode)
}

// Task handles a managed task finishing. Tasks always carry an exit code.
func (c *Classifier) Task(exitCode int) (event.Kind, bool) {
	return c.classify(c.task, "task", &exitCode)
}

func (c *Classifier) classify(out Forwarder, source string, exitCode *int) (event.Kind, bool) {
	kind, ok := Classify(exitCode)
	if !ok {
		debug.Logf("outcome: %s completed without exit code, skipping", source)
		return 0, false
	}
	out.Forward(kind)
	return kind, true
}
