// Package transpile walks a Python module tree and emits Rust-syntax source.
//
// Every node kind has exactly one rule, selected by a type switch. Kinds and
// shapes with no rule abort the traversal with a *TranslateError; the engine
// never skips input silently. Approximate translations are kept but flagged
// with MismatchFragment comments so a reviewer can find them.
package transpile

import (
	"strings"

	"github.com/go-python/gpython/ast"

	"github.com/teranos/py2rs/errors"
)

// SignatureMode selects how function parameters without annotations are typed.
type SignatureMode string

const (
	// SignaturesUntyped leaves unannotated parameters without a type.
	SignaturesUntyped SignatureMode = "untyped"
	// SignaturesGeneric gives every unannotated parameter its own type parameter.
	SignaturesGeneric SignatureMode = "generic"
)

// ParseSignatureMode validates a signature mode name.
func ParseSignatureMode(s string) (SignatureMode, error) {
	switch m := SignatureMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SignaturesUntyped, SignaturesGeneric:
		return m, nil
	}
	return "", errors.Newf("unknown signature mode %q (expected %q or %q)", s, SignaturesUntyped, SignaturesGeneric)
}

// Options configure a Translator.
type Options struct {
	Signatures SignatureMode
	// Indent is one indentation unit, repeated once per open block.
	Indent string
}

// DefaultOptions returns untyped signatures and four-space indentation.
func DefaultOptions() Options {
	return Options{
		Signatures: SignaturesUntyped,
		Indent:     "    ",
	}
}

// Translator runs traversals with a fixed rule set. Each call to Translate
// uses a fresh scope and stream; a Translator must not be shared between
// goroutines.
type Translator struct {
	opts  Options
	scope *Scope
	e     *emitter
}

// New creates a Translator. Zero-valued options fall back to the defaults.
func New(opts Options) *Translator {
	def := DefaultOptions()
	if opts.Signatures == "" {
		opts.Signatures = def.Signatures
	}
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	return &Translator{opts: opts}
}

// Translate converts mod into a fragment stream. The first unsupported or
// malformed construct aborts the run; no partial stream is returned.
func (t *Translator) Translate(mod *ast.Module) (*Stream, error) {
	if mod == nil {
		return nil, errors.New("translate: nil module")
	}
	t.scope = NewScope()
	t.e = &emitter{scope: t.scope, indent: t.opts.Indent}

	if err := t.module(mod); err != nil {
		return nil, err
	}
	if depth := t.scope.Depth(); depth != 0 {
		return nil, errors.AssertionFailedf("scope stack not balanced after traversal: depth %d", depth)
	}
	return &Stream{fragments: t.e.out}, nil
}

// Translate is a convenience wrapper running one traversal with opts.
func Translate(mod *ast.Module, opts Options) (*Stream, error) {
	return New(opts).Translate(mod)
}

func (t *Translator) module(mod *ast.Module) error {
	t.e.comment("/* module */")
	doc, body, ok := splitDocstring(mod.Body)
	if ok {
		t.docComment(doc)
	}
	if err := t.statements(body); err != nil {
		return err
	}
	t.e.newline()
	return nil
}

// docComment emits one //! line per cleaned docstring line.
func (t *Translator) docComment(doc string) {
	for _, line := range cleanDoc(doc) {
		t.e.newline()
		if line == "" {
			t.e.comment("//!")
		} else {
			t.e.comment("//! " + line)
		}
	}
}

func (t *Translator) statements(body []ast.Stmt) error {
	for _, stmt := range body {
		t.e.newline()
		if err := t.stmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// inScope runs fn with m pushed. The marker is popped on every return path.
func (t *Translator) inScope(m Marker, label string, fn func() error) error {
	t.scope.PushLabeled(m, label)
	defer t.scope.Pop()
	return fn()
}

// block emits `{ prelude body }` with body one level deeper than the braces.
func (t *Translator) block(m Marker, label string, prelude func() error, body []ast.Stmt) error {
	t.e.token("{")
	err := t.inScope(m, label, func() error {
		if prelude != nil {
			if err := prelude(); err != nil {
				return err
			}
		}
		return t.statements(body)
	})
	if err != nil {
		return err
	}
	t.e.newline()
	t.e.token("}")
	return nil
}

// docBlock is block for class and function bodies, where a leading string
// literal becomes a comment block.
func (t *Translator) docBlock(m Marker, label string, prelude func() error, body []ast.Stmt) error {
	doc, rest, ok := splitDocstring(body)
	return t.block(m, label, func() error {
		if prelude != nil {
			if err := prelude(); err != nil {
				return err
			}
		}
		if ok {
			t.docComment(doc)
		}
		return nil
	}, rest)
}
