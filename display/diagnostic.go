// Package display renders py2rs failures for people and for machines.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/py2rs/driver"
	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/transpile"
)

// ErrorContext selects how a diagnostic is formatted
type ErrorContext int

const (
	ErrorContextPlain    ErrorContext = iota // logs, pipes, CI output
	ErrorContextTerminal                     // colored output for an interactive terminal
)

// Diagnostic is the presentation-neutral form of a failed run.
type Diagnostic struct {
	File     string              `json:"file,omitempty"`
	Kind     transpile.ErrorKind `json:"kind"`
	NodeKind string              `json:"node_kind,omitempty"`
	Line     int                 `json:"line,omitempty"`
	Column   int                 `json:"column,omitempty"`
	Message  string              `json:"message"`
	Dump     string              `json:"dump,omitempty"`
	Hints    []string            `json:"hints,omitempty"`
}

// Kinds for failures outside translation.
const (
	KindError    transpile.ErrorKind = "error"
	KindNotFound transpile.ErrorKind = "not_found"
	KindSyntax   transpile.ErrorKind = "syntax"
	KindConfig   transpile.ErrorKind = "config"
)

// FromError extracts everything worth showing from err.
func FromError(err error) Diagnostic {
	d := Diagnostic{Kind: KindError, Message: err.Error()}

	var fe *driver.FileError
	if errors.As(err, &fe) {
		d.File = fe.Path
	}

	switch {
	case errors.IsNotFoundError(err):
		d.Kind = KindNotFound
	case errors.IsParseError(err):
		d.Kind = KindSyntax
		d.Hints = append(d.Hints, "py2rs reads Python 3.4 syntax; newer constructs fail to parse")
	case errors.IsInvalidConfigError(err):
		d.Kind = KindConfig
		d.Hints = append(d.Hints, "run 'py2rs config show --sources' to see where each setting comes from")
	}

	if te, ok := transpile.AsTranslateError(err); ok {
		d.Kind = te.Kind
		d.NodeKind = te.NodeKind
		d.Line = te.Line
		d.Column = te.Column
		d.Message = te.Error()
		d.Dump = te.Dump
		if te.Hint != "" {
			d.Hints = append(d.Hints, te.Hint)
		}
	}
	d.Hints = append(d.Hints, errors.GetAllHints(err)...)
	return d
}

// Format generates context-appropriate diagnostic text
func (d Diagnostic) Format(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return d.formatTerminal()
	}
	return d.formatPlain()
}

// formatPlain creates a concise diagnostic for logs and pipes
func (d Diagnostic) formatPlain() string {
	var sb strings.Builder
	sb.WriteString("error: ")
	if d.File != "" {
		sb.WriteString(d.location() + ": ")
	}
	sb.WriteString(d.Message)
	if d.Dump != "" {
		sb.WriteString("\n  node: " + d.Dump)
	}
	for _, hint := range d.Hints {
		sb.WriteString("\n  hint: " + hint)
	}
	return sb.String()
}

// formatTerminal creates a colored diagnostic for terminals
func (d Diagnostic) formatTerminal() string {
	var sb strings.Builder
	sb.WriteString(pterm.Red(d.Message))
	if d.File != "" {
		sb.WriteString(fmt.Sprintf("\n\n%s %s", pterm.LightCyan("At:"), d.location()))
	}
	if d.Dump != "" {
		sb.WriteString(fmt.Sprintf("\n\n%s\n  %s", pterm.LightCyan("Node:"), pterm.Yellow(d.Dump)))
	}
	if len(d.Hints) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Hints:")))
		for _, hint := range d.Hints {
			sb.WriteString("\n  • " + hint)
		}
	}
	return sb.String()
}

func (d Diagnostic) location() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column+1)
	}
	return d.File
}

// Report writes err to w as JSON or formatted text.
func Report(w io.Writer, err error, asJSON bool, ctx ErrorContext) error {
	d := FromError(err)
	if asJSON {
		data, mErr := MarshalJSON(d, true)
		if mErr != nil {
			return errors.Wrap(mErr, "failed to marshal diagnostic")
		}
		_, wErr := fmt.Fprintln(w, string(data))
		return wErr
	}
	_, wErr := fmt.Fprintln(w, d.Format(ctx))
	return wErr
}
