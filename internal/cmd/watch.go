package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/chime/internal/feed"
	"github.com/alexander-akhmetov/chime/internal/tui"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard of events from the daemon",
	Long: `Connect to the daemon's event feed and show current error and warning
counts plus the most recent events. Muted events are shown dimmed.

Controls:
  c - Clear the event list
  q - Quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "Feed URL (default: ws://<listen>/events from config)")
}

func runWatch(_ *cobra.Command, _ []string) error {
	url := watchURL
	if url == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Listen == "" {
			return errors.New("event feed is disabled (listen is empty), pass --url")
		}
		url = feed.URL(cfg.Listen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, url)
}
