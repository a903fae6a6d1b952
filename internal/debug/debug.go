// Package debug provides debug logging utilities.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	enabled = os.Getenv("CHIME_DEBUG") == "1"
	out     io.Writer = os.Stderr
)

// Logf writes a debug message to stderr if CHIME_DEBUG=1
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[DEBUG %s] %s\n", timestamp, msg)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Enable turns debug logging on, e.g. for a --debug flag.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// SetOutput redirects debug output and returns a func restoring the previous
// writer and enabled state.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevEnabled := out, enabled
	out, enabled = w, true
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, enabled = prevOut, prevEnabled
	}
}
