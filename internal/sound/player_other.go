//go:build !darwin && !linux && !windows

package sound

func platformCommands() []command {
	return nil
}
