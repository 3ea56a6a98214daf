package transpile

import (
	"fmt"

	"github.com/go-python/gpython/ast"

	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/pyast"
)

// ErrorKind categorizes fatal translation errors.
type ErrorKind string

const (
	// KindUnsupported: no rule exists for the node kind or for this shape of it.
	KindUnsupported ErrorKind = "unsupported_construct"
	// KindMalformed: the tree violates a shape the rules rely on.
	KindMalformed ErrorKind = "malformed_assumption"
)

// Sentinels for errors.Is checks against *TranslateError.
var (
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	ErrMalformedAssumption  = errors.New("malformed assumption")
)

// TranslateError is the fatal error value produced by translation rules.
// It carries the offending node so the reporting layer decides how to show it.
type TranslateError struct {
	Kind     ErrorKind `json:"kind"`
	NodeKind string    `json:"node_kind"`
	Line     int       `json:"line"`
	Column   int       `json:"column"`
	Reason   string    `json:"reason"`
	Dump     string    `json:"dump"`
	Hint     string    `json:"hint,omitempty"`
	Node     ast.Ast   `json:"-"`
}

func (e *TranslateError) Error() string {
	what := "unsupported construct"
	if e.Kind == KindMalformed {
		what = "malformed input"
	}
	return fmt.Sprintf("%s %s at line %d: %s", what, e.NodeKind, e.Line, e.Reason)
}

// Unwrap exposes the kind sentinel.
func (e *TranslateError) Unwrap() error {
	if e.Kind == KindMalformed {
		return ErrMalformedAssumption
	}
	return ErrUnsupportedConstruct
}

func newTranslateError(kind ErrorKind, node ast.Ast, reason string) *TranslateError {
	line, col := pyast.Position(node)
	nodeKind := pyast.KindOf(node)
	return &TranslateError{
		Kind:     kind,
		NodeKind: nodeKind,
		Line:     line,
		Column:   col,
		Reason:   reason,
		Dump:     pyast.Dump(node),
		Hint:     hints[nodeKind],
		Node:     node,
	}
}

func unsupported(node ast.Ast, format string, args ...interface{}) error {
	return newTranslateError(KindUnsupported, node, fmt.Sprintf(format, args...))
}

func malformed(node ast.Ast, format string, args ...interface{}) error {
	return newTranslateError(KindMalformed, node, fmt.Sprintf(format, args...))
}

// AsTranslateError extracts the structured error from err, if any.
func AsTranslateError(err error) (*TranslateError, bool) {
	var te *TranslateError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

var hints = map[string]string{
	"ListComp":     "rewrite as an explicit for loop pushing into a Vec",
	"SetComp":      "rewrite as an explicit for loop inserting into a HashSet",
	"DictComp":     "rewrite as an explicit for loop inserting into a HashMap",
	"GeneratorExp": "rewrite as an iterator chain by hand",
	"Delete":       "drop the binding or remove the entry explicitly",
	"FunctionDef":  "remove default values and variadic parameters before translating",
	"Lambda":       "remove default values and variadic parameters before translating",
	"Yield":        "generators have no direct translation; return an iterator",
	"YieldFrom":    "generators have no direct translation; return an iterator",
	"Global":       "pass the value explicitly or use a static",
	"Nonlocal":     "pass the value explicitly",
}
