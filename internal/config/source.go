package config

import (
	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/gate"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

// Source re-reads configuration from disk on every call so that edits take
// effect on the next decision without any invalidation step. Read failures
// never propagate: callers get the built-in defaults instead.
type Source struct {
	globalDir string
	localDir  string
	overrides func(*Config)
}

// NewSource creates a Source over the given directories. overrides, if not
// nil, is applied after every read (used for CLI flags).
func NewSource(globalDir, localDir string, overrides func(*Config)) *Source {
	return &Source{globalDir: globalDir, localDir: localDir, overrides: overrides}
}

// Current returns the freshly read configuration, or the embedded defaults
// if reading fails.
func (s *Source) Current() *Config {
	cfg, err := Read(s.globalDir, s.localDir)
	if err != nil {
		debug.Logf("config: read failed, using defaults: %v", err)
		return fallback(s.globalDir)
	}
	if s.overrides != nil {
		s.overrides(cfg)
	}
	return cfg
}

// GateConfig implements gate.ConfigSource.
func (s *Source) GateConfig() gate.Config {
	cfg, err := Read(s.globalDir, s.localDir)
	if err != nil {
		debug.Logf("config: read failed, gate uses defaults: %v", err)
		return gate.DefaultConfig()
	}
	return cfg.GateConfig()
}

// SoundSettings returns the current sink settings.
func (s *Source) SoundSettings() sound.Settings {
	return s.Current().SoundSettings()
}

// fallback is used when the user's files cannot be read: everything enabled,
// embedded volume, default directories.
func fallback(globalDir string) *Config {
	cfg, err := loadEmbedded()
	if err != nil {
		cfg = &Config{Volume: 0.5}
	}
	cfg.Enabled = true
	cfg.Events = nil
	cfg.configDir = globalDir
	cfg.sources = []string{"fallback"}
	return cfg
}
