package cmd

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/chime/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chime configuration",
	Long:  `View and manage chime configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with its sources",
	Long: `Show the fully resolved configuration and the sources it was built from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/chime/config.yaml)
  3. Environment variables (CHIME_*)
  4. Local config (.chime/config.yaml at the project root)
  5. CLI flags (highest precedence)`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how the resolved configuration differs from the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigDiff,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDiffCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := configReport(cfg)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runConfigDiff(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	diff, err := configDiff(cfg)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Println("configuration matches the defaults")
		return nil
	}
	fmt.Print(diff)
	return nil
}

func configReport(cfg *config.Config) (string, error) {
	data, err := cfg.YAML()
	if err != nil {
		return "", err
	}

	out := "# Chime Configuration\n\n## Sources (in order of precedence)\n"
	for _, src := range cfg.Sources() {
		out += fmt.Sprintf("  - %s\n", src)
	}
	out += "\n## Directories\n"
	out += fmt.Sprintf("  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		out += fmt.Sprintf("  Local config:  %s\n", cfg.LocalDir())
	} else {
		out += "  Local config:  (none detected)\n"
	}
	out += fmt.Sprintf("  Sounds:        %s\n", cfg.ResolvedSoundsDir())
	out += fmt.Sprintf("  Socket:        %s\n", cfg.SocketPath())
	out += "\n## Effective\n"
	out += string(data)
	return out, nil
}

// configDiff returns a unified diff from the built-in defaults to cfg, or ""
// when they are equal.
func configDiff(cfg *config.Config) (string, error) {
	defaults, err := config.Defaults()
	if err != nil {
		return "", err
	}
	before, err := defaults.YAML()
	if err != nil {
		return "", err
	}
	after, err := cfg.YAML()
	if err != nil {
		return "", err
	}
	return udiff.Unified("defaults", "effective", string(before), string(after)), nil
}
