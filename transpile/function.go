package transpile

import (
	"fmt"

	"github.com/go-python/gpython/ast"
)

// checkArguments rejects every parameter form without a direct equivalent.
// owner is the function or lambda the parameters belong to.
func checkArguments(owner ast.Ast, args *ast.Arguments) error {
	if args == nil {
		return nil
	}
	switch {
	case len(args.Defaults) > 0:
		return unsupported(owner, "default parameter values are not translated")
	case args.Vararg != nil:
		return unsupported(owner, "variable-length parameter *%s is not translated", args.Vararg.Arg)
	case len(args.Kwonlyargs) > 0 || len(args.KwDefaults) > 0:
		return unsupported(owner, "keyword-only parameters are not translated")
	case args.Kwarg != nil:
		return unsupported(owner, "keyword parameter **%s is not translated", args.Kwarg.Arg)
	}
	return nil
}

// decorators are kept as marker lines above the definition.
func (t *Translator) decorators(list []ast.Expr) error {
	for _, dec := range list {
		text, err := t.e.capture(func() error { return t.expr(dec) })
		if err != nil {
			return err
		}
		t.e.mismatch("/* @" + text + " */")
		t.e.newline()
	}
	return nil
}

func (t *Translator) functionDef(n *ast.FunctionDef) error {
	if err := checkArguments(n, n.Args); err != nil {
		return err
	}
	if err := t.decorators(n.DecoratorList); err != nil {
		return err
	}

	var params []*ast.Arg
	if n.Args != nil {
		params = n.Args.Args
	}

	// Generic mode gives each unannotated parameter its own type token.
	types := make([]string, len(params))
	var generics []string
	for i, p := range params {
		if i == 0 && p.Arg == "self" {
			continue
		}
		if p.Annotation == nil && t.opts.Signatures == SignaturesGeneric {
			types[i] = fmt.Sprintf("T%d", len(generics))
			generics = append(generics, types[i])
		}
	}

	t.e.token("fn")
	t.e.space()
	t.e.token(toRustIdent(string(n.Name)))
	if len(generics) > 0 {
		t.e.token("<")
		for i, g := range generics {
			if i > 0 {
				t.e.token(",")
				t.e.space()
			}
			t.e.token(g)
		}
		t.e.token(">")
	}

	t.e.token("(")
	for i, p := range params {
		if i > 0 {
			t.e.token(",")
			t.e.space()
		}
		if i == 0 && p.Arg == "self" {
			t.e.token("&self")
			continue
		}
		t.e.token(toRustIdent(string(p.Arg)))
		switch {
		case p.Annotation != nil:
			t.e.token(":")
			t.e.space()
			if err := t.expr(p.Annotation); err != nil {
				return err
			}
		case types[i] != "":
			t.e.token(":")
			t.e.space()
			t.e.token(types[i])
		}
	}
	t.e.token(")")

	if n.Returns != nil {
		t.e.space()
		t.e.token("->")
		t.e.space()
		if err := t.expr(n.Returns); err != nil {
			return err
		}
	}
	t.e.space()

	return t.docBlock(Function, string(n.Name), func() error {
		for _, p := range params {
			t.scope.Bind(string(p.Arg))
		}
		return nil
	}, n.Body)
}

func (t *Translator) classDef(n *ast.ClassDef) error {
	switch {
	case len(n.Keywords) > 0:
		return unsupported(n, "class keywords are not translated")
	case n.Starargs != nil || n.Kwargs != nil:
		return unsupported(n, "star arguments in class bases are not translated")
	}
	if err := t.decorators(n.DecoratorList); err != nil {
		return err
	}

	t.e.token("impl")
	t.e.space()
	t.e.token(toRustIdent(string(n.Name)))
	t.e.space()
	if len(n.Bases) > 0 {
		bases, err := t.e.capture(func() error { return t.group("", "", n.Bases) })
		if err != nil {
			return err
		}
		t.e.mismatch("/* extends " + bases + " */")
		t.e.space()
	}
	return t.docBlock(Class, string(n.Name), nil, n.Body)
}

func (t *Translator) lambda(n *ast.Lambda) error {
	if err := checkArguments(n, n.Args); err != nil {
		return err
	}
	t.e.token("|")
	if n.Args != nil {
		for i, p := range n.Args.Args {
			if i > 0 {
				t.e.token(",")
				t.e.space()
			}
			t.e.token(toRustIdent(string(p.Arg)))
		}
	}
	t.e.token("|")
	t.e.space()
	return t.expr(n.Body)
}
