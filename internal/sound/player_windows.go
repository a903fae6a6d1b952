//go:build windows

package sound

import "strings"

func platformCommands() []command {
	return []command{
		{name: "powershell", args: func(file string, _ float64) []string {
			script := "(New-Object Media.SoundPlayer '" + strings.ReplaceAll(file, "'", "''") + "').PlaySync()"
			return []string{"-NoProfile", "-NonInteractive", "-Command", script}
		}},
	}
}
