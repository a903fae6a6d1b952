package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProcessRunning(t *testing.T) {
	tests := []struct {
		name     string
		pid      int
		expected bool
	}{
		{
			name:     "current process",
			pid:      os.Getpid(),
			expected: true,
		},
		{
			name:     "non-existent process",
			pid:      999999999,
			expected: false,
		},
		{
			name:     "zero pid",
			pid:      0,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isProcessRunning(tt.pid))
		})
	}
}

func TestProcessRSSKB(t *testing.T) {
	rss, err := processRSSKB(os.Getpid())
	require.NoError(t, err)
	assert.Positive(t, rss)
}

func TestDaemonInfoRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CHIME_STATE_DIR", tmpDir)

	info, err := readDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, info, "no file yet")

	require.NoError(t, writeDaemonInfo("/tmp/chime.sock", "127.0.0.1:7531"))
	assert.Equal(t, filepath.Join(tmpDir, "daemon.json"), daemonFilePath())

	info, err = readDaemonInfo()
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, os.Getpid(), info.PID)
	assert.Equal(t, "/tmp/chime.sock", info.Socket)
	assert.Equal(t, "127.0.0.1:7531", info.Listen)
	assert.NotEmpty(t, info.StartedAt)

	removeDaemonInfo()
	_, err = os.Stat(daemonFilePath())
	assert.True(t, os.IsNotExist(err))
}

func TestReadDaemonInfoCorrupted(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CHIME_STATE_DIR", tmpDir)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "daemon.json"), []byte("not json{{{"), 0o600))

	_, err := readDaemonInfo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted")
}

func TestRemoveDaemonInfoNonExistent(t *testing.T) {
	t.Setenv("CHIME_STATE_DIR", t.TempDir())
	removeDaemonInfo()
}
