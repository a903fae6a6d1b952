// Package dirs provides XDG Base Directory Specification compliant paths
// for all chime directories.
package dirs

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the chime configuration directory.
// Resolution order: XDG_CONFIG_HOME/chime > ~/.config/chime.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chime")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "chime")
	}
	return filepath.Join(home, ".config", "chime")
}

// StateDir returns the chime state directory.
// Resolution order: CHIME_STATE_DIR > XDG_STATE_HOME/chime > ~/.local/state/chime.
func StateDir() string {
	if dir := os.Getenv("CHIME_STATE_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "chime")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", "chime")
	}
	return filepath.Join(home, ".local", "state", "chime")
}

// SoundsDir returns the default sound asset directory (ConfigDir/sounds).
func SoundsDir() string {
	return filepath.Join(ConfigDir(), "sounds")
}

// SocketPath returns the default daemon socket (StateDir/chime.sock).
func SocketPath() string {
	return filepath.Join(StateDir(), "chime.sock")
}

// DaemonFile returns the path of the running daemon's info file.
func DaemonFile() string {
	return filepath.Join(StateDir(), "daemon.json")
}
