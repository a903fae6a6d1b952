// Package main provides the CLI entry point for chime.
package main

import (
	"os"
	"runtime/debug"

	"github.com/alexander-akhmetov/chime/internal/cmd"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			commit, date = vcsInfo(info.Settings)
		}
	}
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// vcsInfo extracts a short commit (with -dirty for modified trees) and the
// commit time from build settings.
func vcsInfo(settings []debug.BuildSetting) (rev, when string) {
	rev, when = "unknown", "unknown"
	var full string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			full = s.Value
		case "vcs.time":
			if s.Value != "" {
				when = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if len(full) >= 7 {
		rev = full[:7]
		if dirty {
			rev += "-dirty"
		}
	}
	return rev, when
}
