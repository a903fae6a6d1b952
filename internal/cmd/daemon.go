package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/alexander-akhmetov/chime/internal/dirs"
)

type daemonInfo struct {
	PID       int    `json:"pid"`
	Socket    string `json:"socket"`
	Listen    string `json:"listen,omitempty"`
	StartedAt string `json:"started_at"`
}

func daemonFilePath() string {
	return dirs.DaemonFile()
}

func writeDaemonInfo(socket, listen string) error {
	path := daemonFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(daemonInfo{
		PID:       os.Getpid(),
		Socket:    socket,
		Listen:    listen,
		StartedAt: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal daemon info: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// readDaemonInfo returns nil without error when no daemon file exists.
func readDaemonInfo() (*daemonInfo, error) {
	data, err := os.ReadFile(daemonFilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read daemon file: %w", err)
	}

	var info daemonInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("corrupted daemon file: %w", err)
	}
	return &info, nil
}

func removeDaemonInfo() {
	os.Remove(daemonFilePath())
}

func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

// processRSSKB returns the resident set size of pid in KiB.
func processRSSKB(pid int) (uint64, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS / 1024, nil
}
