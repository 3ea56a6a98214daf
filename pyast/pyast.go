// Package pyast is the Python front-end used by py2rs.
//
// Parsing is delegated to github.com/go-python/gpython; this package only
// loads source text, hands it to the parser and exposes the resulting
// *ast.Module together with a few read-only helpers for naming and
// serialising nodes in diagnostics.
package pyast

import (
	"bytes"
	"io"
	"os"
	"reflect"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/teranos/py2rs/errors"
)

// Parse reads Python source from r and returns the module tree.
// filename is only used in syntax error messages.
func Parse(r io.Reader, filename string) (*ast.Module, error) {
	tree, err := parser.Parse(r, filename, py.ExecMode)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s", filename), errors.ErrParse)
	}

	mod, ok := tree.(*ast.Module)
	if !ok {
		return nil, errors.AssertionFailedf("parser returned %T for %s, expected *ast.Module", tree, filename)
	}
	return mod, nil
}

// ParseString parses Python source held in memory.
func ParseString(src, filename string) (*ast.Module, error) {
	return Parse(bytes.NewBufferString(src), filename)
}

// ParseFile loads path fully and parses it.
func ParseFile(path string) (*ast.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapNotFound(err, "failed to load input")
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(bytes.NewReader(src), path)
}

// Dump serialises a node in the front-end's own Python-like notation,
// e.g. `ListComp(elt=Name(id='x',ctx=Load()),generators=[...])`.
func Dump(node ast.Ast) string {
	if isNil(node) {
		return "None"
	}
	return ast.Dump(node)
}

// KindOf names the node kind, e.g. "ListComp" for *ast.ListComp.
func KindOf(node ast.Ast) string {
	if isNil(node) {
		return "None"
	}
	t := reflect.TypeOf(node)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Position returns the 1-based line and 0-based column of a node.
func Position(node ast.Ast) (line, column int) {
	if isNil(node) {
		return 0, 0
	}
	return node.GetLineno(), node.GetColOffset()
}

// isNil reports whether an interface holds nil or a typed nil pointer.
func isNil(node ast.Ast) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
