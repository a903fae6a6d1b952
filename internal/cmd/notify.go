package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/host"
)

const notifyTimeout = 5 * time.Second

var (
	notifyExitCode int
	notifySource   string
	notifyFile     string
	notifyJSON     bool
)

// notifyTypes maps notify subjects to wire message types.
var notifyTypes = map[string]string{
	"diagnostics": host.TypeDiagnostics,
	"clear":       host.TypeDiagnosticsClear,
	"shell":       host.TypeShellCompleted,
	"task":        host.TypeTaskCompleted,
	"config":      host.TypeConfigChanged,
	"reset":       host.TypeSessionReset,
	"state":       host.TypeState,
}

var notifyCmd = &cobra.Command{
	Use:   "notify <diagnostics|clear|shell|task|config|reset|state>",
	Short: "Send a signal to the running daemon",
	Long: `Send one message to the running chime daemon and print its reply.

Subjects:
  diagnostics  full diagnostics list for one source, JSON on stdin or --file
               (native {"source", "diagnostics"} or an LSP publishDiagnostics
               notification)
  clear        drop the diagnostics of --source, or all sources
  shell        interactive shell command finished (--exit-code, optional)
  task         managed task finished (--exit-code, required)
  config       configuration changed, re-apply volume and enabled
  reset        new session, counts go back to zero
  state        print the current counts`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"diagnostics", "clear", "shell", "task", "config", "reset", "state"},
	RunE:      runNotify,
}

func init() {
	notifyCmd.Flags().IntVar(&notifyExitCode, "exit-code", 0, "Exit code of the finished command or task")
	notifyCmd.Flags().StringVar(&notifySource, "source", "", "Diagnostics source (file URI or tool name)")
	notifyCmd.Flags().StringVarP(&notifyFile, "file", "f", "", "Read the JSON payload from a file (- for stdin)")
	notifyCmd.Flags().BoolVar(&notifyJSON, "json", false, "Print the raw reply as JSON")
}

type notifyOptions struct {
	exitCode    int
	hasExitCode bool
	source      string
}

func runNotify(cmd *cobra.Command, args []string) error {
	typ, ok := notifyTypes[args[0]]
	if !ok {
		return fmt.Errorf("unknown subject %q", args[0])
	}

	payload, err := readPayload(typ, notifyFile, os.Stdin)
	if err != nil {
		return err
	}

	msg, err := buildMessage(typ, payload, notifyOptions{
		exitCode:    notifyExitCode,
		hasExitCode: cmd.Flags().Changed("exit-code"),
		source:      notifySource,
	})
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	debug.Logf("notify: sending %s to %s", typ, cfg.SocketPath())
	resp, err := host.Send(ctx, cfg.SocketPath(), msg)
	if err != nil {
		return fmt.Errorf("is chime serve running? %w", err)
	}

	out, err := formatResponse(resp, notifyJSON, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return err
	}
	fmt.Print(out)

	if !resp.OK {
		return errors.New(resp.Error)
	}
	return nil
}

// readPayload reads the JSON payload for a message. Diagnostics read stdin
// unless --file is given; other types only read a payload when asked to.
func readPayload(typ, file string, stdin io.Reader) ([]byte, error) {
	switch {
	case file == "-":
		return io.ReadAll(stdin)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		return data, nil
	case typ == host.TypeDiagnostics:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

// buildMessage sets the message type and the flag-provided fields on top of
// the optional payload.
func buildMessage(typ string, payload []byte, opts notifyOptions) ([]byte, error) {
	msg := bytes.TrimSpace(payload)
	if len(msg) == 0 {
		if typ == host.TypeDiagnostics {
			return nil, errors.New("diagnostics need a JSON payload on stdin or --file")
		}
		msg = []byte("{}")
	}
	if !gjson.ValidBytes(msg) {
		return nil, errors.New("payload is not valid JSON")
	}
	if !gjson.ParseBytes(msg).IsObject() {
		return nil, errors.New("payload must be a JSON object")
	}

	msg, err := sjson.SetBytes(msg, "type", typ)
	if err != nil {
		return nil, fmt.Errorf("set type: %w", err)
	}

	if opts.source != "" {
		path := "source"
		if gjson.GetBytes(msg, "params").IsObject() {
			path = "params.source"
		}
		if msg, err = sjson.SetBytes(msg, path, opts.source); err != nil {
			return nil, fmt.Errorf("set source: %w", err)
		}
	}

	switch {
	case opts.hasExitCode:
		if msg, err = sjson.SetBytes(msg, "exit_code", opts.exitCode); err != nil {
			return nil, fmt.Errorf("set exit code: %w", err)
		}
	case typ == host.TypeTaskCompleted && !gjson.GetBytes(msg, "exit_code").Exists():
		return nil, errors.New("task needs --exit-code")
	}

	return msg, nil
}

func formatResponse(resp host.Response, asJSON, color bool) (string, error) {
	if asJSON {
		data, err := json.Marshal(resp)
		if err != nil {
			return "", err
		}
		out := pretty.Pretty(data)
		if color {
			out = pretty.Color(out, nil)
		}
		return string(out), nil
	}

	var b strings.Builder
	if !resp.OK {
		fmt.Fprintf(&b, "rejected: %s\n", resp.Error)
	} else if len(resp.Events) == 0 {
		b.WriteString("no events\n")
	} else {
		fmt.Fprintf(&b, "events: %s\n", strings.Join(resp.Events, ", "))
	}
	if resp.State != nil {
		fmt.Fprintf(&b, "errors: %d, warnings: %d\n", resp.State.Errors, resp.State.Warnings)
	}
	return b.String(), nil
}
