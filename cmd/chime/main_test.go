package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVCSInfo(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		wantRev  string
		wantWhen string
	}{
		{
			name:     "no vcs settings",
			wantRev:  "unknown",
			wantWhen: "unknown",
		},
		{
			name: "clean tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0f1e2d3c4b5a69788"},
				{Key: "vcs.time", Value: "2026-10-01T08:30:00Z"},
				{Key: "vcs.modified", Value: "false"},
			},
			wantRev:  "0f1e2d3",
			wantWhen: "2026-10-01T08:30:00Z",
		},
		{
			name: "modified tree listed before revision",
			settings: []debug.BuildSetting{
				{Key: "vcs.modified", Value: "true"},
				{Key: "vcs.revision", Value: "0f1e2d3c4b5a69788"},
			},
			wantRev:  "0f1e2d3-dirty",
			wantWhen: "unknown",
		},
		{
			name: "truncated revision is not trusted",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0f1e"},
				{Key: "vcs.modified", Value: "true"},
			},
			wantRev:  "unknown",
			wantWhen: "unknown",
		},
		{
			name: "empty time",
			settings: []debug.BuildSetting{
				{Key: "vcs.time", Value: ""},
			},
			wantRev:  "unknown",
			wantWhen: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev, when := vcsInfo(tt.settings)
			assert.Equal(t, tt.wantRev, rev)
			assert.Equal(t, tt.wantWhen, when)
		})
	}
}
