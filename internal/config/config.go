// Package config provides unified configuration management for chime.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/chime/internal/dirs"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/gate"
	"github.com/alexander-akhmetov/chime/internal/git"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// LocalDirName is the per-project config directory name.
const LocalDirName = ".chime"

// Config holds all configuration settings for chime.
// Fields ending in *Set track whether that field was explicitly set in config.
// This allows distinguishing explicit false/0 from "not set", enabling proper
// merge behavior where local config can override global config with zero values.
type Config struct {
	Enabled   bool              `yaml:"enabled"`
	Volume    float64           `yaml:"volume"`
	SoundsDir string            `yaml:"sounds_dir"`
	Socket    string            `yaml:"socket"`
	Listen    string            `yaml:"listen"`
	Events    map[string]bool   `yaml:"events"`
	Files     map[string]string `yaml:"files"`

	// Set tracking for merge behavior
	EnabledSet bool `yaml:"-"`
	VolumeSet  bool `yaml:"-"`
	ListenSet  bool `yaml:"-"`

	// Private: track where config was loaded from
	configDir string
	localDir  string
	sources   []string // ordered list of sources that contributed to this config
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Load loads all configuration from the default locations.
// It looks for .chime/ at the root of the enclosing git project, falling
// back to the current directory. It installs defaults if needed.
func Load() (*Config, error) {
	return LoadWithDirs(dirs.ConfigDir(), DetectLocalDir())
}

// DetectLocalDir returns the project-local config directory for the current
// working directory, or "" if there is none.
func DetectLocalDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	base := cwd
	if root, err := git.ProjectRoot(cwd); err == nil {
		base = root
	}
	candidate := filepath.Join(base, LocalDirName)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return ""
}

// LoadWithDirs installs defaults into globalDir and then reads configuration.
// Local config (.chime/) overrides global config (~/.config/chime/) per-field.
// If localDir is empty, only global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	if err := InstallDefaults(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}
	return Read(globalDir, localDir)
}

// Read loads configuration without touching the filesystem beyond reading.
func Read(globalDir, localDir string) (*Config, error) {
	// Load in order: embedded → global → env → local
	// Each layer only overwrites fields that were explicitly set

	// 1. Start with embedded defaults
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	// 2. Merge global config
	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	// 3. Apply environment variables (between global and local)
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// 4. Merge local config (highest file precedence)
	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InstallDefaults creates the config directory and installs default config if not exists.
func InstallDefaults(configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := DefaultsYAML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	return nil
}

// DefaultsYAML returns the embedded default config file.
func DefaultsYAML() ([]byte, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}
	return data, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	return loadEmbedded()
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := DefaultsYAML()
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	// Parse into a map to detect which fields were explicitly set
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if _, ok := raw["enabled"]; ok {
		cfg.EnabledSet = true
	}
	if _, ok := raw["volume"]; ok {
		cfg.VolumeSet = true
	}
	if _, ok := raw["listen"]; ok {
		cfg.ListenSet = true
	}

	return cfg, nil
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() error {
	if v := os.Getenv("CHIME_ENABLED"); v != "" {
		c.Enabled = v == "true" || v == "1"
		c.EnabledSet = true
		c.sources = append(c.sources, "env:CHIME_ENABLED")
	}

	if v := os.Getenv("CHIME_VOLUME"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse CHIME_VOLUME: %w", err)
		}
		c.Volume = f
		c.VolumeSet = true
		c.sources = append(c.sources, "env:CHIME_VOLUME")
	}

	if v := os.Getenv("CHIME_SOUNDS_DIR"); v != "" {
		c.SoundsDir = v
		c.sources = append(c.sources, "env:CHIME_SOUNDS_DIR")
	}

	if v := os.Getenv("CHIME_SOCKET"); v != "" {
		c.Socket = v
		c.sources = append(c.sources, "env:CHIME_SOCKET")
	}

	if v, ok := os.LookupEnv("CHIME_LISTEN"); ok {
		c.Listen = v
		c.ListenSet = true
		c.sources = append(c.sources, "env:CHIME_LISTEN")
	}
	return nil
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.EnabledSet {
		c.Enabled = src.Enabled
		c.EnabledSet = true
	}
	if src.VolumeSet {
		c.Volume = src.Volume
		c.VolumeSet = true
	}
	if src.ListenSet {
		c.Listen = src.Listen
		c.ListenSet = true
	}
	if src.SoundsDir != "" {
		c.SoundsDir = src.SoundsDir
	}
	if src.Socket != "" {
		c.Socket = src.Socket
	}

	// Per-event maps merge key by key.
	if len(src.Events) > 0 && c.Events == nil {
		c.Events = make(map[string]bool, len(src.Events))
	}
	for k, v := range src.Events {
		c.Events[k] = v
	}
	if len(src.Files) > 0 && c.Files == nil {
		c.Files = make(map[string]string, len(src.Files))
	}
	for k, v := range src.Files {
		c.Files[k] = v
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence.
func (c *Config) ApplyCLIFlags(socket, listen string, listenChanged bool) {
	if socket != "" {
		c.Socket = socket
		c.sources = append(c.sources, "cli:socket")
	}
	if listenChanged {
		c.Listen = listen
		c.ListenSet = true
		c.sources = append(c.sources, "cli:listen")
	}
}

// Validate rejects unknown event names and out-of-range volume.
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %g out of range [0, 1]", c.Volume)
	}
	for name := range c.Events {
		if _, err := event.ParseKind(name); err != nil {
			return fmt.Errorf("events: %w", err)
		}
	}
	for name := range c.Files {
		if _, err := event.ParseKind(name); err != nil {
			return fmt.Errorf("files: %w", err)
		}
	}
	return nil
}

// SocketPath returns the configured socket or the default one.
func (c *Config) SocketPath() string {
	if c.Socket != "" {
		return expandHome(c.Socket)
	}
	return dirs.SocketPath()
}

// ResolvedSoundsDir returns the configured sounds dir or the default one
// inside the global config directory.
func (c *Config) ResolvedSoundsDir() string {
	if c.SoundsDir != "" {
		return expandHome(c.SoundsDir)
	}
	if c.configDir != "" {
		return filepath.Join(c.configDir, "sounds")
	}
	return dirs.SoundsDir()
}

// GateConfig returns the gate's view of this configuration.
func (c *Config) GateConfig() gate.Config {
	kinds := make(map[event.Kind]bool, len(c.Events))
	for name, on := range c.Events {
		if k, err := event.ParseKind(name); err == nil {
			kinds[k] = on
		}
	}
	return gate.Config{GlobalEnabled: c.Enabled, Kinds: kinds}
}

// SoundSettings returns the sink's view of this configuration.
func (c *Config) SoundSettings() sound.Settings {
	files := make(map[event.Kind]string, len(c.Files))
	for name, path := range c.Files {
		if k, err := event.ParseKind(name); err == nil && path != "" {
			files[k] = expandHome(path)
		}
	}
	return sound.Settings{
		Enabled: c.Enabled,
		Volume:  c.Volume,
		Dir:     c.ResolvedSoundsDir(),
		Files:   files,
	}
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
