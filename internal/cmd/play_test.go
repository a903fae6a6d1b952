package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

func TestCheckPlayable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fail.wav"), []byte("RIFF"), 0o600))

	tests := []struct {
		name     string
		settings sound.Settings
		kind     event.Kind
		wantErr  string
	}{
		{
			name:     "asset present",
			settings: sound.Settings{Enabled: true, Dir: dir},
			kind:     event.Fail,
		},
		{
			name:     "globally disabled",
			settings: sound.Settings{Enabled: false, Dir: dir},
			kind:     event.Fail,
			wantErr:  "disabled",
		},
		{
			name:     "missing asset",
			settings: sound.Settings{Enabled: true, Dir: dir},
			kind:     event.Success,
			wantErr:  "no sound file for success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPlayable(tt.settings, tt.kind)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPlayOnDaemon(t *testing.T) {
	socket := startTestDaemon(t)

	require.NoError(t, playOnDaemon(socket, "success"))

	err := playOnDaemon(socket, "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event kind")
}

func TestPlayOnDaemonNotRunning(t *testing.T) {
	err := playOnDaemon(filepath.Join(t.TempDir(), "missing.sock"), "success")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is chime serve running?")
}
