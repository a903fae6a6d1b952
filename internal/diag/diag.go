// Package diag models the host's diagnostic snapshot: every diagnostic
// currently known across all sources, grouped per source.
package diag

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic. Only Error and Warning are counted.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity accepts the names used by editors and linters.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err", "fatal":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "information", "info":
		return SeverityInformation, nil
	case "hint", "note":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// Diagnostic is a single host-reported issue.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	// Source is the tool that produced the diagnostic, or the report's
	// source when the item does not name one.
	Source string
}

// Snapshot is an unordered collection of per-source diagnostic lists.
// It always represents the full state, never a delta.
type Snapshot map[string][]Diagnostic

// Count traverses the snapshot once and returns the number of errors and
// warnings. Other severities are ignored.
func (s Snapshot) Count() (errors, warnings int) {
	for _, list := range s {
		for _, d := range list {
			switch d.Severity {
			case SeverityError:
				errors++
			case SeverityWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}

// Clone returns a deep copy safe to hand across goroutines.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for src, list := range s {
		out[src] = append([]Diagnostic(nil), list...)
	}
	return out
}
