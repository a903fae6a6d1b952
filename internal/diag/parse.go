package diag

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidPayload is returned when a diagnostics payload is not valid JSON.
var ErrInvalidPayload = errors.New("invalid diagnostics payload")

// Report is one source's full diagnostic list as published by the host.
type Report struct {
	Source      string
	Diagnostics []Diagnostic
}

// ParseReport reads a diagnostics payload in either the native shape
//
//	{"source": "file:///a.go", "diagnostics": [{"severity": "error", "message": "..."}]}
//
// or the LSP textDocument/publishDiagnostics shape
//
//	{"params": {"uri": "file:///a.go", "diagnostics": [{"severity": 1, "range": {...}}]}}
//
// Numeric severities follow LSP (1 error .. 4 hint). A missing severity
// counts as an error.
func ParseReport(data []byte) (Report, error) {
	if !gjson.ValidBytes(data) {
		return Report{}, ErrInvalidPayload
	}
	root := gjson.ParseBytes(data)
	if params := root.Get("params"); params.IsObject() {
		root = params
	}

	var rep Report
	for _, path := range []string{"source", "uri", "file"} {
		if v := root.Get(path); v.Exists() && v.String() != "" {
			rep.Source = v.String()
			break
		}
	}
	if rep.Source == "" {
		return Report{}, fmt.Errorf("%w: missing source", ErrInvalidPayload)
	}

	list := root.Get("diagnostics")
	if list.Exists() && !list.IsArray() {
		return Report{}, fmt.Errorf("%w: diagnostics is not an array", ErrInvalidPayload)
	}

	var parseErr error
	list.ForEach(func(_, item gjson.Result) bool {
		d, err := parseDiagnostic(item)
		if err != nil {
			parseErr = err
			return false
		}
		if d.Source == "" {
			d.Source = rep.Source
		}
		rep.Diagnostics = append(rep.Diagnostics, d)
		return true
	})
	if parseErr != nil {
		return Report{}, parseErr
	}
	return rep, nil
}

func parseDiagnostic(item gjson.Result) (Diagnostic, error) {
	d := Diagnostic{
		Message: item.Get("message").String(),
		Line:    int(item.Get("line").Int()),
		Source:  item.Get("source").String(),
	}
	if start := item.Get("range.start.line"); start.Exists() {
		d.Line = int(start.Int())
	}

	sev := item.Get("severity")
	switch sev.Type {
	case gjson.Null:
		d.Severity = SeverityError
	case gjson.Number:
		n := sev.Int()
		if n < 1 || n > 4 {
			return Diagnostic{}, fmt.Errorf("%w: severity %d out of range", ErrInvalidPayload, n)
		}
		d.Severity = Severity(n - 1)
	case gjson.String:
		s, err := ParseSeverity(sev.String())
		if err != nil {
			return Diagnostic{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		d.Severity = s
	default:
		return Diagnostic{}, fmt.Errorf("%w: unsupported severity %s", ErrInvalidPayload, sev.Raw)
	}
	return d, nil
}
