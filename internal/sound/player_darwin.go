//go:build darwin

package sound

import "strconv"

func platformCommands() []command {
	return []command{
		{name: "afplay", args: func(file string, volume float64) []string {
			return []string{"-v", strconv.FormatFloat(volume, 'g', -1, 64), file}
		}},
	}
}
