package sound

import (
	"fmt"
	"strings"

	"github.com/alexander-akhmetov/chime/internal/event"
)

// Availability reports, per kind, the resolved asset path ("" when missing).
func Availability(s Settings) map[event.Kind]string {
	out := make(map[event.Kind]string, len(event.AllKinds()))
	for _, k := range event.AllKinds() {
		out[k] = ResolveAsset(s, k)
	}
	return out
}

// Summarize returns a human-readable status listing which kinds have a
// sound asset available.
func Summarize(s Settings) string {
	var b strings.Builder

	state := "enabled"
	if !s.Enabled {
		state = "disabled"
	}
	fmt.Fprintf(&b, "Sound output: %s (volume %.0f%%)\n", state, s.Volume*100)
	if s.Dir != "" {
		fmt.Fprintf(&b, "Sounds directory: %s\n", s.Dir)
	} else {
		b.WriteString("Sounds directory: (not set)\n")
	}

	avail := Availability(s)
	found := 0
	for _, k := range event.AllKinds() {
		if p := avail[k]; p != "" {
			found++
			fmt.Fprintf(&b, "  %-15s available  %s\n", k, p)
		} else {
			fmt.Fprintf(&b, "  %-15s missing\n", k)
		}
	}
	fmt.Fprintf(&b, "%d of %d sounds available\n", found, len(event.AllKinds()))
	return b.String()
}
