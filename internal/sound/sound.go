// Package sound renders events as audible feedback. Playback is
// fire-and-forget: Play never blocks the caller and never reports failure
// upward.
package sound

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/alexander-akhmetov/chime/internal/event"
)

// Sink plays a sound for an event kind.
type Sink interface {
	Play(kind event.Kind)
}

// Noop is a Sink that does nothing.
type Noop struct{}

// Play does nothing.
func (Noop) Play(event.Kind) {}

// Recorder is a Sink that records every call instead of producing sound.
type Recorder struct {
	mu    sync.Mutex
	kinds []event.Kind
}

// Play records kind.
func (r *Recorder) Play(kind event.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

// Kinds returns the recorded kinds in call order.
func (r *Recorder) Kinds() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Kind(nil), r.kinds...)
}

// Settings is the sink-level view of the configuration.
type Settings struct {
	Enabled bool
	Volume  float64 // 0..1
	Dir     string
	Files   map[event.Kind]string
}

// Extensions tried, in order, when looking up <dir>/<kind>.<ext>.
var Extensions = []string{".wav", ".mp3", ".ogg", ".aiff"}

// ResolveAsset returns the sound file for kind, or "" if none exists.
// A per-kind file override wins over the sounds directory.
func ResolveAsset(s Settings, kind event.Kind) string {
	if p := s.Files[kind]; p != "" && fileExists(p) {
		return p
	}
	if s.Dir == "" {
		return ""
	}
	for _, ext := range Extensions {
		p := filepath.Join(s.Dir, kind.String()+ext)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
