package transpile

import (
	"strings"

	"github.com/go-python/gpython/ast"
)

func (t *Translator) stmt(node ast.Stmt) error {
	switch n := node.(type) {
	case *ast.FunctionDef:
		return t.functionDef(n)
	case *ast.ClassDef:
		return t.classDef(n)
	case *ast.Return:
		return t.returnStmt(n)
	case *ast.Assign:
		return t.assign(n)
	case *ast.AugAssign:
		return t.augAssign(n)
	case *ast.For:
		return t.forStmt(n)
	case *ast.While:
		return t.whileStmt(n)
	case *ast.If:
		return t.ifStmt(n)
	case *ast.With:
		return t.withStmt(n)
	case *ast.Raise:
		return t.raise(n)
	case *ast.Try:
		return t.try(n)
	case *ast.Assert:
		return t.assert(n)
	case *ast.Import:
		return t.importStmt(n)
	case *ast.ImportFrom:
		return t.importFrom(n)
	case *ast.ExprStmt:
		if err := t.expr(n.Value); err != nil {
			return err
		}
		t.e.token(";")
		return nil
	case *ast.Pass:
		t.e.comment("/* pass */")
		return nil
	case *ast.Break:
		t.e.token("break", ";")
		return nil
	case *ast.Continue:
		t.e.token("continue", ";")
		return nil
	case *ast.Delete:
		return unsupported(n, "del statements are not translated")
	case *ast.Global:
		return unsupported(n, "global declarations are not translated")
	case *ast.Nonlocal:
		return unsupported(n, "nonlocal declarations are not translated")
	default:
		return unsupported(node, "no translation rule for statement")
	}
}

func (t *Translator) returnStmt(n *ast.Return) error {
	t.e.token("return")
	if n.Value != nil {
		t.e.space()
		if err := t.expr(n.Value); err != nil {
			return err
		}
	}
	t.e.token(";")
	return nil
}

// assign picks the declaration form. At module and class level a binding
// that introduces any new name becomes a constant with an unresolved type,
// destructuring groups included. Elsewhere a new name gets a let binding;
// anything else is plain assignment.
func (t *Translator) assign(n *ast.Assign) error {
	if len(n.Targets) == 0 {
		return malformed(n, "assignment without a target")
	}
	var names []string
	for _, target := range n.Targets {
		if err := collectNames(target, &names); err != nil {
			return err
		}
	}

	fresh := false
	for _, name := range names {
		if !t.scope.IsBound(name) {
			fresh = true
		}
	}

	declaresConst := fresh && (t.scope.AtGlobalScope() || t.scope.InnermostIs(Class))
	switch {
	case declaresConst:
		t.e.token("const")
		t.e.space()
		if err := t.targets(n.Targets); err != nil {
			return err
		}
		t.e.token(":")
		t.e.space()
		t.e.token("Unknown")
	case fresh:
		t.e.token("let")
		t.e.space()
		if err := t.targets(n.Targets); err != nil {
			return err
		}
	default:
		if err := t.targets(n.Targets); err != nil {
			return err
		}
	}
	for _, name := range names {
		t.scope.Bind(name)
	}

	t.e.space()
	t.e.token("=")
	t.e.space()
	if err := t.expr(n.Value); err != nil {
		return err
	}
	t.e.token(";")
	return nil
}

// targets renders `a = b = v` as the single destructuring group `(a, b)`.
func (t *Translator) targets(targets []ast.Expr) error {
	if len(targets) == 1 {
		return t.expr(targets[0])
	}
	return t.group("(", ")", targets)
}

// collectNames gathers the plain names a binding target introduces. Attribute
// and subscript targets introduce nothing.
func collectNames(target ast.Expr, names *[]string) error {
	switch x := target.(type) {
	case *ast.Name:
		*names = append(*names, string(x.Id))
	case *ast.Tuple:
		for _, elt := range x.Elts {
			if err := collectNames(elt, names); err != nil {
				return err
			}
		}
	case *ast.List:
		for _, elt := range x.Elts {
			if err := collectNames(elt, names); err != nil {
				return err
			}
		}
	case *ast.Attribute, *ast.Subscript:
	case *ast.Starred:
		return unsupported(x, "starred assignment targets are not translated")
	default:
		return malformed(target, "unexpected assignment target")
	}
	return nil
}

func (t *Translator) augAssign(n *ast.AugAssign) error {
	if err := t.expr(n.Target); err != nil {
		return err
	}
	t.e.space()
	switch n.Op {
	case ast.Pow:
		t.e.token("=")
		t.e.space()
		if err := t.operand(n.Target); err != nil {
			return err
		}
		t.e.token(".pow(")
		if err := t.expr(n.Value); err != nil {
			return err
		}
		t.e.token(")")
	case ast.FloorDiv:
		t.e.mismatch("/* floor */")
		t.e.space()
		t.e.token("/=")
		t.e.space()
		if err := t.expr(n.Value); err != nil {
			return err
		}
	default:
		op, ok := binaryOperator(n.Op)
		if !ok {
			return malformed(n, "unknown augmented operator %d", n.Op)
		}
		t.e.token(op + "=")
		t.e.space()
		if err := t.expr(n.Value); err != nil {
			return err
		}
	}
	t.e.token(";")
	return nil
}

func (t *Translator) forStmt(n *ast.For) error {
	if len(n.Orelse) > 0 {
		return unsupported(n, "for/else is not translated")
	}
	var names []string
	if err := collectNames(n.Target, &names); err != nil {
		return err
	}
	t.e.token("for")
	t.e.space()
	if err := t.expr(n.Target); err != nil {
		return err
	}
	t.e.space()
	t.e.token("in")
	t.e.space()
	if err := t.expr(n.Iter); err != nil {
		return err
	}
	t.e.space()
	return t.block(LoopBlock, "", func() error {
		for _, name := range names {
			t.scope.Bind(name)
		}
		return nil
	}, n.Body)
}

func (t *Translator) whileStmt(n *ast.While) error {
	if len(n.Orelse) > 0 {
		return unsupported(n, "while/else is not translated")
	}
	t.e.token("while")
	t.e.space()
	if err := t.expr(n.Test); err != nil {
		return err
	}
	t.e.space()
	return t.block(WhileBlock, "", nil, n.Body)
}

func (t *Translator) ifStmt(n *ast.If) error {
	t.e.token("if")
	t.e.space()
	if err := t.expr(n.Test); err != nil {
		return err
	}
	t.e.space()
	if err := t.block(ConditionalBlock, "", nil, n.Body); err != nil {
		return err
	}
	if len(n.Orelse) == 0 {
		return nil
	}
	t.e.space()
	t.e.token("else")
	t.e.space()
	if elif, ok := n.Orelse[0].(*ast.If); ok && len(n.Orelse) == 1 {
		return t.ifStmt(elif)
	}
	return t.block(ConditionalBlock, "", nil, n.Orelse)
}

// withStmt brackets the body with markers; the resources are bound at the
// top of the block and release on exit is left to the reviewer.
func (t *Translator) withStmt(n *ast.With) error {
	t.e.token("{")
	t.e.space()
	t.e.mismatch("/* <with block> */")
	err := t.inScope(ResourceBlock, "", func() error {
		for _, item := range n.Items {
			t.e.newline()
			if err := t.withItem(item); err != nil {
				return err
			}
		}
		t.e.newline()
		t.e.mismatch("/* <-> */")
		return t.statements(n.Body)
	})
	if err != nil {
		return err
	}
	t.e.newline()
	t.e.token("}")
	t.e.space()
	t.e.mismatch("/* </with block> */")
	return nil
}

func (t *Translator) withItem(item *ast.WithItem) error {
	t.e.token("let")
	t.e.space()
	if item.OptionalVars == nil {
		t.e.token("_")
	} else {
		var names []string
		switch item.OptionalVars.(type) {
		case *ast.Name, *ast.Tuple, *ast.List:
		default:
			return unsupported(item.OptionalVars, "with targets must be names")
		}
		if err := collectNames(item.OptionalVars, &names); err != nil {
			return err
		}
		if err := t.expr(item.OptionalVars); err != nil {
			return err
		}
		for _, name := range names {
			t.scope.Bind(name)
		}
	}
	t.e.space()
	t.e.token("=")
	t.e.space()
	if err := t.expr(item.ContextExpr); err != nil {
		return err
	}
	t.e.token(";")
	return nil
}

// raise becomes an early return carrying the exception as the error value.
func (t *Translator) raise(n *ast.Raise) error {
	if n.Exc == nil {
		label, ok := t.scope.Label(ExceptionBlock)
		if !ok || label == "" {
			return unsupported(n, "bare raise outside a named exception handler")
		}
		t.e.token("return")
		t.e.space()
		t.e.token("Err(", toRustIdent(label), ")", ";")
		t.e.space()
		t.e.mismatch("/* re-raise */")
		return nil
	}

	t.e.token("return")
	t.e.space()
	t.e.token("Err(")
	if err := t.expr(n.Exc); err != nil {
		return err
	}
	t.e.token(")", ";")
	if n.Cause != nil {
		cause, err := t.e.capture(func() error { return t.expr(n.Cause) })
		if err != nil {
			return err
		}
		t.e.space()
		t.e.mismatch("/* from " + cause + " */")
	}
	return nil
}

// try renders `if /* try */ { body } else { handler }`. Exception types are
// not modelled, so two or more handlers are flagged once and each handler
// keeps its own block.
func (t *Translator) try(n *ast.Try) error {
	if len(n.Orelse) > 0 {
		return unsupported(n, "try/else is not translated")
	}

	t.e.token("if")
	t.e.space()
	t.e.mismatch("/* try */")
	t.e.space()
	if err := t.block(ConditionalBlock, "", nil, n.Body); err != nil {
		return err
	}

	switch len(n.Handlers) {
	case 0:
	case 1:
		h := n.Handlers[0]
		header, err := t.handlerHeader(h)
		if err != nil {
			return err
		}
		t.e.space()
		t.e.token("else")
		t.e.space()
		err = t.block(ExceptionBlock, string(h.Name), func() error {
			t.e.newline()
			t.e.comment(header)
			t.bindHandlerName(h)
			return nil
		}, h.Body)
		if err != nil {
			return err
		}
	default:
		t.e.space()
		t.e.token("else")
		t.e.space()
		t.e.token("{")
		err := t.inScope(ExceptionBlock, "", func() error {
			t.e.newline()
			t.e.mismatch(`unimplemented!("multiple handlers");`)
			for _, h := range n.Handlers {
				header, err := t.handlerHeader(h)
				if err != nil {
					return err
				}
				t.e.newline()
				t.e.comment(header)
				t.e.space()
				err = t.block(ExceptionBlock, string(h.Name), func() error {
					t.bindHandlerName(h)
					return nil
				}, h.Body)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		t.e.newline()
		t.e.token("}")
	}

	if len(n.Finalbody) > 0 {
		t.e.newline()
		t.e.mismatch("/* finally */")
		t.e.space()
		return t.block(ExceptionBlock, "", nil, n.Finalbody)
	}
	return nil
}

func (t *Translator) handlerHeader(h *ast.ExceptHandler) (string, error) {
	var sb strings.Builder
	sb.WriteString("/* except")
	if h.ExprType != nil {
		typ, err := t.e.capture(func() error { return t.expr(h.ExprType) })
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + typ)
	}
	if h.Name != "" {
		sb.WriteString(" as " + toRustIdent(string(h.Name)))
	}
	sb.WriteString(" */")
	return sb.String(), nil
}

func (t *Translator) bindHandlerName(h *ast.ExceptHandler) {
	if h.Name != "" {
		t.scope.Bind(string(h.Name))
	}
}

func (t *Translator) assert(n *ast.Assert) error {
	t.e.token("assert!(")
	if err := t.expr(n.Test); err != nil {
		return err
	}
	if n.Msg != nil {
		t.e.token(",")
		t.e.space()
		t.e.token(`"{}"`, ",")
		t.e.space()
		if err := t.expr(n.Msg); err != nil {
			return err
		}
	}
	t.e.token(")", ";")
	return nil
}

func (t *Translator) importStmt(n *ast.Import) error {
	for i, alias := range n.Names {
		if i > 0 {
			t.e.newline()
		}
		t.e.token("use")
		t.e.space()
		t.e.token(rustPath(string(alias.Name)))
		if alias.AsName != "" {
			t.e.space()
			t.e.token("as")
			t.e.space()
			t.e.token(toRustIdent(string(alias.AsName)))
		}
		t.e.token(";")
	}
	return nil
}

func (t *Translator) importFrom(n *ast.ImportFrom) error {
	var path []string
	for i := 0; i < n.Level; i++ {
		path = append(path, "super")
	}
	if n.Module != "" {
		path = append(path, rustPath(string(n.Module)))
	}
	prefix := strings.Join(path, "::")
	if prefix != "" {
		prefix += "::"
	}

	t.e.token("use")
	t.e.space()
	if len(n.Names) == 1 {
		t.e.token(prefix + importName(n.Names[0]))
	} else {
		items := make([]string, len(n.Names))
		for i, alias := range n.Names {
			items[i] = importName(alias)
		}
		t.e.token(prefix + "{" + strings.Join(items, ", ") + "}")
	}
	t.e.token(";")
	return nil
}

func importName(alias *ast.Alias) string {
	if alias.Name == "*" {
		return "*"
	}
	name := toRustIdent(string(alias.Name))
	if alias.AsName != "" {
		name += " as " + toRustIdent(string(alias.AsName))
	}
	return name
}

// rustPath turns a dotted module name into a Rust path.
func rustPath(dotted string) string {
	parts := strings.Split(dotted, ".")
	for i, p := range parts {
		parts[i] = toRustIdent(p)
	}
	return strings.Join(parts, "::")
}
