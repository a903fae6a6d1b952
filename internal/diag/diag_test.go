package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCount(t *testing.T) {
	snap := Snapshot{
		"file:///a.go": {
			{Severity: SeverityError},
			{Severity: SeverityWarning},
			{Severity: SeverityHint},
		},
		"file:///b.go": {
			{Severity: SeverityError},
			{Severity: SeverityInformation},
			{Severity: SeverityWarning},
			{Severity: SeverityWarning},
		},
		"file:///c.go": nil,
	}

	errs, warns := snap.Count()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 3, warns)
}

func TestSnapshotCountEmpty(t *testing.T) {
	errs, warns := Snapshot(nil).Count()
	assert.Zero(t, errs)
	assert.Zero(t, warns)
}

func TestSnapshotClone(t *testing.T) {
	snap := Snapshot{"a": {{Severity: SeverityError}}}
	c := snap.Clone()
	c["a"][0].Severity = SeverityHint
	c["b"] = nil

	assert.Equal(t, SeverityError, snap["a"][0].Severity)
	assert.NotContains(t, snap, "b")
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", SeverityError},
		{"Error", SeverityError},
		{"warn", SeverityWarning},
		{"warning", SeverityWarning},
		{"info", SeverityInformation},
		{"hint", SeverityHint},
		{" note ", SeverityHint},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSeverity(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseSeverity("critical-ish")
	require.Error(t, err)
}
