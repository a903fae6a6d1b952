package sound

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/event"
)

// maxConcurrentSounds limits simultaneous playback.
const maxConcurrentSounds = 2

// command describes an OS audio player and how to pass it a file and volume.
type command struct {
	name string
	args func(file string, volume float64) []string
}

type runFunc func(name string, args ...string) error

func execRun(name string, args ...string) error {
	return exec.Command(name, args...).Run() //nolint:gosec // name comes from the fixed platform table
}

// Player is the system Sink. It plays assets through an OS-native player
// and enforces the global enabled switch.
type Player struct {
	mu       sync.RWMutex
	settings Settings

	cmd        command
	run        runFunc
	concurrent atomic.Int32
	wg         sync.WaitGroup
}

// NewPlayer detects an audio command for this platform and applies s.
func NewPlayer(s Settings) *Player {
	cmd := detectCommand(exec.LookPath)
	debug.Logf("sound: player initialized, command=%q platform=%s", cmd.name, runtime.GOOS)
	p := &Player{cmd: cmd, run: execRun}
	p.Apply(s)
	return p
}

// Apply replaces the enabled/volume/asset settings. Called on config change.
func (p *Player) Apply(s Settings) {
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 1 {
		s.Volume = 1
	}
	p.mu.Lock()
	p.settings = s
	p.mu.Unlock()
}

// Settings returns the currently applied settings.
func (p *Player) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Available reports whether an OS audio command was found.
func (p *Player) Available() bool {
	return p.cmd.name != ""
}

// CommandName returns the detected audio command, "" if none.
func (p *Player) CommandName() string {
	return p.cmd.name
}

// Play starts playback of kind's asset in the background. It does nothing if:
//   - sound output is globally disabled
//   - no asset exists for kind
//   - no audio command is available
//   - the concurrent playback limit is reached
func (p *Player) Play(kind event.Kind) {
	s := p.Settings()
	if !s.Enabled {
		debug.Logf("sound: output disabled, dropping %s", kind)
		return
	}

	path := ResolveAsset(s, kind)
	if path == "" {
		debug.Logf("sound: no asset for %s", kind)
		return
	}

	if !p.Available() {
		debug.Logf("sound: no audio player available for %s", kind)
		return
	}

	if p.concurrent.Add(1) > maxConcurrentSounds {
		p.concurrent.Add(-1)
		debug.Logf("sound: concurrent limit reached, dropping %s", kind)
		return
	}

	p.wg.Add(1)
	go p.playAsync(kind, path, s.Volume)
}

func (p *Player) playAsync(kind event.Kind, path string, volume float64) {
	defer p.wg.Done()
	defer p.concurrent.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			debug.Logf("sound: playback of %s panicked: %v", kind, r)
		}
	}()

	if err := p.run(p.cmd.name, p.cmd.args(path, volume)...); err != nil {
		debug.Logf("sound: playback of %s failed: %v", kind, err)
	}
}

// Wait blocks until in-flight playbacks finish. Used on shutdown.
func (p *Player) Wait() {
	p.wg.Wait()
}

// detectCommand returns the first platform command found on PATH.
func detectCommand(lookPath func(string) (string, error)) command {
	for _, c := range platformCommands() {
		if _, err := lookPath(c.name); err == nil {
			return c
		}
	}
	return command{}
}
