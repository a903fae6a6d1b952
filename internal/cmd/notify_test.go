package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/alexander-akhmetov/chime/internal/host"
)

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		payload string
		opts    notifyOptions
		want    map[string]any
		wantErr string
	}{
		{
			name: "config without payload",
			typ:  host.TypeConfigChanged,
			want: map[string]any{"type": "config_changed"},
		},
		{
			name: "shell with exit code",
			typ:  host.TypeShellCompleted,
			opts: notifyOptions{exitCode: 2, hasExitCode: true},
			want: map[string]any{"type": "shell_completed", "exit_code": float64(2)},
		},
		{
			name: "shell without exit code stays without",
			typ:  host.TypeShellCompleted,
			want: map[string]any{"type": "shell_completed", "exit_code": nil},
		},
		{
			name: "explicit zero exit code is kept",
			typ:  host.TypeTaskCompleted,
			opts: notifyOptions{exitCode: 0, hasExitCode: true},
			want: map[string]any{"type": "task_completed", "exit_code": float64(0)},
		},
		{
			name:    "task without exit code",
			typ:     host.TypeTaskCompleted,
			wantErr: "--exit-code",
		},
		{
			name:    "task exit code from payload",
			typ:     host.TypeTaskCompleted,
			payload: `{"exit_code": 1}`,
			want:    map[string]any{"type": "task_completed", "exit_code": float64(1)},
		},
		{
			name:    "diagnostics keep payload and get source",
			typ:     host.TypeDiagnostics,
			payload: `{"diagnostics": [{"severity": "error"}]}`,
			opts:    notifyOptions{source: "main.go"},
			want:    map[string]any{"type": "diagnostics", "source": "main.go", "diagnostics.#": float64(1)},
		},
		{
			name:    "source goes into LSP params",
			typ:     host.TypeDiagnostics,
			payload: `{"method": "textDocument/publishDiagnostics", "params": {"uri": "file:///a.go", "diagnostics": []}}`,
			opts:    notifyOptions{source: "override"},
			want:    map[string]any{"params.source": "override", "params.uri": "file:///a.go", "source": nil},
		},
		{
			name:    "diagnostics need payload",
			typ:     host.TypeDiagnostics,
			payload: "  \n",
			wantErr: "JSON payload",
		},
		{
			name:    "invalid JSON",
			typ:     host.TypeDiagnostics,
			payload: `{"diagnostics": [`,
			wantErr: "not valid JSON",
		},
		{
			name:    "payload must be an object",
			typ:     host.TypeShellCompleted,
			payload: `[1, 2]`,
			wantErr: "JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := buildMessage(tt.typ, []byte(tt.payload), tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, gjson.ValidBytes(msg), string(msg))
			for path, want := range tt.want {
				got := gjson.GetBytes(msg, path)
				if want == nil {
					assert.False(t, got.Exists(), "%s should be absent in %s", path, msg)
					continue
				}
				assert.Equal(t, want, got.Value(), "%s in %s", path, msg)
			}
		})
	}
}

func TestNotifyTypesMatchProtocol(t *testing.T) {
	for subject, typ := range notifyTypes {
		assert.NotEmpty(t, typ, subject)
	}
	assert.Equal(t, host.TypeDiagnosticsClear, notifyTypes["clear"])
	assert.Len(t, notifyTypes, len(notifyCmd.ValidArgs))
}

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"from": "file"}`), 0o600))

	tests := []struct {
		name  string
		typ   string
		file  string
		stdin string
		want  string
	}{
		{"diagnostics read stdin", host.TypeDiagnostics, "", `{"from": "stdin"}`, `{"from": "stdin"}`},
		{"file wins over stdin", host.TypeDiagnostics, file, `{"from": "stdin"}`, `{"from": "file"}`},
		{"dash reads stdin", host.TypeShellCompleted, "-", `{"exit_code": 3}`, `{"exit_code": 3}`},
		{"other types ignore stdin", host.TypeShellCompleted, "", `{"exit_code": 3}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(tt.typ, tt.file, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := readPayload(host.TypeDiagnostics, filepath.Join(dir, "missing.json"), strings.NewReader(""))
	require.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	state := &host.StateDTO{Errors: 2, Warnings: 1}

	out, err := formatResponse(host.Response{OK: true, Events: []string{"error_increase", "warning"}, State: state}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "events: error_increase, warning\nerrors: 2, warnings: 1\n", out)

	out, err = formatResponse(host.Response{OK: true, State: state}, false, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "no events\n"))

	out, err = formatResponse(host.Response{Error: "unknown message type"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "rejected: unknown message type\n", out)

	out, err = formatResponse(host.Response{OK: true, Events: []string{"fail"}, State: state}, true, false)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"events\": [\"fail\"]")
	assert.Equal(t, float64(2), gjson.Get(out, "state.errors").Value())
}
