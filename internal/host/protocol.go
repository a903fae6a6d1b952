package host

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/diag"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/session"
)

// Message types understood by the daemon.
const (
	TypeDiagnostics      = "diagnostics"
	TypeDiagnosticsClear = "diagnostics_clear"
	TypeShellCompleted   = "shell_completed"
	TypeTaskCompleted    = "task_completed"
	TypeConfigChanged    = "config_changed"
	TypeSessionReset     = "session_reset"
	TypePlay             = "play"
	TypeState            = "state"
)

// lspPublishDiagnostics lets raw LSP notifications be forwarded unchanged.
const lspPublishDiagnostics = "textDocument/publishDiagnostics"

// ErrUnknownType is returned for messages with an unrecognized type.
var ErrUnknownType = errors.New("unknown message type")

// Response is the daemon's reply to one message.
type Response struct {
	OK     bool      `json:"ok"`
	Events []string  `json:"events,omitempty"`
	State  *StateDTO `json:"state,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// StateDTO is the wire form of the session counts.
type StateDTO struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Engine is what the dispatcher drives. *engine.Engine satisfies it.
type Engine interface {
	OnDiagnosticsChanged(ctx context.Context) ([]event.Kind, error)
	OnShellCommandCompleted(exitCode *int) (event.Kind, bool)
	OnTaskCompleted(exitCode int) (event.Kind, bool)
	OnConfigChanged()
	OnSessionReset()
	Play(kind event.Kind) bool
	State() session.State
}

// Dispatcher turns raw messages into engine calls.
type Dispatcher struct {
	engine    Engine
	workspace *Workspace
}

// NewDispatcher creates a dispatcher that stores diagnostics in ws.
func NewDispatcher(e Engine, ws *Workspace) *Dispatcher {
	return &Dispatcher{engine: e, workspace: ws}
}

// Handle processes one message. It never panics on bad input; problems are
// reported in the Response.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) Response {
	events, err := d.handle(ctx, data)
	if err != nil {
		debug.Logf("host: message rejected: %v", err)
		return Response{Error: err.Error(), State: d.state()}
	}
	names := make([]string, len(events))
	for i, k := range events {
		names[i] = k.String()
	}
	return Response{OK: true, Events: names, State: d.state()}
}

func (d *Dispatcher) state() *StateDTO {
	s := d.engine.State()
	return &StateDTO{Errors: s.PreviousErrors, Warnings: s.PreviousWarnings}
}

func (d *Dispatcher) handle(ctx context.Context, data []byte) ([]event.Kind, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	msg := gjson.ParseBytes(data)

	typ := msg.Get("type").String()
	if typ == "" && msg.Get("method").String() == lspPublishDiagnostics {
		typ = TypeDiagnostics
	}
	debug.Logf("host: received %s (%d bytes)", typ, len(data))

	switch typ {
	case TypeDiagnostics:
		rep, err := diag.ParseReport(data)
		if err != nil {
			return nil, err
		}
		d.workspace.Set(rep.Source, rep.Diagnostics)
		return d.engine.OnDiagnosticsChanged(ctx)

	case TypeDiagnosticsClear:
		if src := msg.Get("source").String(); src != "" {
			d.workspace.Remove(src)
		} else {
			d.workspace.Clear()
		}
		return d.engine.OnDiagnosticsChanged(ctx)

	case TypeShellCompleted:
		code, err := exitCode(msg, false)
		if err != nil {
			return nil, err
		}
		return one(d.engine.OnShellCommandCompleted(code)), nil

	case TypeTaskCompleted:
		code, err := exitCode(msg, true)
		if err != nil {
			return nil, err
		}
		return one(d.engine.OnTaskCompleted(*code)), nil

	case TypeConfigChanged:
		d.engine.OnConfigChanged()
		return nil, nil

	case TypeSessionReset:
		d.workspace.Clear()
		d.engine.OnSessionReset()
		return nil, nil

	case TypePlay:
		kind, err := event.ParseKind(msg.Get("kind").String())
		if err != nil {
			return nil, err
		}
		if !d.engine.Play(kind) {
			return nil, nil
		}
		return []event.Kind{kind}, nil

	case TypeState:
		return nil, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typ)
	}
}

// exitCode reads exit_code. Absent or null is allowed unless required.
func exitCode(msg gjson.Result, required bool) (*int, error) {
	v := msg.Get("exit_code")
	if v.Type == gjson.Null {
		if required {
			return nil, errors.New("exit_code is required")
		}
		return nil, nil
	}
	if v.Type != gjson.Number {
		return nil, fmt.Errorf("exit_code must be a number, got %s", v.Raw)
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("exit_code must be an integer, got %s", v.Raw)
	}
	code := int(n)
	return &code, nil
}

func one(kind event.Kind, ok bool) []event.Kind {
	if !ok {
		return nil
	}
	return []event.Kind{kind}
}
