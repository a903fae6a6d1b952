// Package cmd implements the CLI commands for chime.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/chime/internal/config"
	"github.com/alexander-akhmetov/chime/internal/debug"
)

// Version information set from main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	socketFlag string
	debugFlag  bool
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "chime",
	Short: "Sound notifications for coding sessions",
	Long: `Chime turns editor signals into short sounds.

A daemon (chime serve) receives diagnostics snapshots and command/task
completions over a unix socket, derives events from them (success, fail,
warning, error_increase, error_decrease), filters them through per-event
switches from the config, and plays the matching sound.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if debugFlag {
			debug.Enable()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Unix socket path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to stderr (same as CHIME_DEBUG=1)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig loads and validates configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ApplyCLIFlags(socketFlag, "", false)
	return cfg, nil
}
