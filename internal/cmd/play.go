package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/gate"
	"github.com/alexander-akhmetov/chime/internal/host"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

var playDaemon bool

var playCmd = &cobra.Command{
	Use:   "play <kind>",
	Short: "Play the sound for one event kind",
	Long: `Play the sound for one event kind through the same per-event switches
the daemon uses. Handy for checking sound files and volume.

Kinds: success, fail, warning, error_increase, error_decrease`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"success", "fail", "warning", "error_increase", "error_decrease"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playDaemon, "daemon", false, "Ask the running daemon to play instead of playing locally")
}

func runPlay(_ *cobra.Command, args []string) error {
	kind, err := event.ParseKind(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if playDaemon {
		return playOnDaemon(cfg.SocketPath(), kind.String())
	}

	settings := cfg.SoundSettings()
	if err := checkPlayable(settings, kind); err != nil {
		return err
	}

	player := sound.NewPlayer(settings)
	if !player.Available() {
		return errors.New("no audio player found")
	}
	defer player.Wait()

	if !gate.New(cfg, player).Forward(kind) {
		fmt.Printf("%s is turned off in the config (events.%s)\n", kind, kind)
		return nil
	}
	fmt.Printf("playing %s\n", kind)
	return nil
}

// playOnDaemon asks the daemon at socket to play the named kind and fails
// when the daemon rejects the request.
func playOnDaemon(socket, name string) error {
	msg, err := sjson.SetBytes([]byte(`{"type":"play"}`), "kind", name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	resp, err := host.Send(ctx, socket, msg)
	if err != nil {
		return fmt.Errorf("is chime serve running? %w", err)
	}

	out, err := formatResponse(resp, false, false)
	if err != nil {
		return err
	}
	fmt.Print(out)

	if !resp.OK {
		return errors.New(resp.Error)
	}
	return nil
}

func checkPlayable(s sound.Settings, kind event.Kind) error {
	if !s.Enabled {
		return errors.New("sound output is disabled (enabled: false)")
	}
	if sound.ResolveAsset(s, kind) == "" {
		return fmt.Errorf("no sound file for %s in %s", kind, s.Dir)
	}
	return nil
}
