//go:build linux

package sound

import "strconv"

func platformCommands() []command {
	return []command{
		{name: "paplay", args: func(file string, volume float64) []string {
			// PulseAudio volume is linear, 65536 = 100%.
			return []string{"--volume=" + strconv.Itoa(int(volume*65536)), file}
		}},
		{name: "pw-play", args: func(file string, volume float64) []string {
			return []string{"--volume=" + strconv.FormatFloat(volume, 'g', -1, 64), file}
		}},
		{name: "ffplay", args: func(file string, volume float64) []string {
			return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(int(volume * 100)), file}
		}},
		{name: "aplay", args: func(file string, _ float64) []string {
			return []string{"-q", file}
		}},
	}
}
