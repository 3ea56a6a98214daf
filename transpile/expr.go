package transpile

import (
	"math/big"
	"strconv"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"
)

// binaryOperator maps the operators Rust spells the same way.
func binaryOperator(op ast.OperatorNumber) (string, bool) {
	switch op {
	case ast.Add:
		return "+", true
	case ast.Sub:
		return "-", true
	case ast.Mult:
		return "*", true
	case ast.Div:
		return "/", true
	case ast.Modulo:
		return "%", true
	case ast.LShift:
		return "<<", true
	case ast.RShift:
		return ">>", true
	case ast.BitOr:
		return "|", true
	case ast.BitXor:
		return "^", true
	case ast.BitAnd:
		return "&", true
	}
	return "", false
}

func compareOperator(op ast.CmpOp) (string, bool) {
	switch op {
	case ast.Eq:
		return "==", true
	case ast.NotEq:
		return "!=", true
	case ast.Lt:
		return "<", true
	case ast.LtE:
		return "<=", true
	case ast.Gt:
		return ">", true
	case ast.GtE:
		return ">=", true
	}
	return "", false
}

func (t *Translator) expr(node ast.Expr) error {
	switch n := node.(type) {
	case *ast.BoolOp:
		return t.boolOp(n)
	case *ast.BinOp:
		return t.binOp(n)
	case *ast.UnaryOp:
		return t.unaryOp(n)
	case *ast.Lambda:
		return t.lambda(n)
	case *ast.IfExp:
		return t.ifExp(n)
	case *ast.Dict:
		return t.dict(n)
	case *ast.Set:
		t.e.token("hashset!")
		return t.group("{", "}", n.Elts)
	case *ast.ListComp, *ast.SetComp, *ast.DictComp, *ast.GeneratorExp:
		return unsupported(node, "comprehensions are not translated")
	case *ast.Yield, *ast.YieldFrom:
		return unsupported(node, "generators are not translated")
	case *ast.Compare:
		return t.compare(n)
	case *ast.Call:
		return t.call(n)
	case *ast.Num:
		return t.num(n)
	case *ast.Str:
		t.e.token(rustString(string(n.S)))
		return nil
	case *ast.Bytes:
		t.e.token(rustBytes([]byte(n.S)))
		return nil
	case *ast.NameConstant:
		return t.nameConstant(n)
	case *ast.Ellipsis:
		return unsupported(n, "ellipsis has no translation")
	case *ast.Attribute:
		if err := t.operand(n.Value); err != nil {
			return err
		}
		t.e.token(".", toRustIdent(string(n.Attr)))
		return nil
	case *ast.Subscript:
		return t.subscript(n)
	case *ast.Starred:
		return unsupported(n, "starred expressions are not translated")
	case *ast.Name:
		t.e.token(toRustIdent(string(n.Id)))
		return nil
	case *ast.List:
		if len(n.Elts) == 0 {
			t.e.token("Vec::new()")
			return nil
		}
		t.e.token("vec!")
		return t.group("[", "]", n.Elts)
	case *ast.Tuple:
		if len(n.Elts) == 1 {
			t.e.token("(")
			if err := t.expr(n.Elts[0]); err != nil {
				return err
			}
			t.e.token(",", ")")
			return nil
		}
		return t.group("(", ")", n.Elts)
	default:
		return unsupported(node, "no translation rule for expression")
	}
}

// operand renders x, parenthesized when it is itself an operator expression
// so that source grouping survives without precedence analysis.
func (t *Translator) operand(x ast.Expr) error {
	switch x.(type) {
	case *ast.BoolOp, *ast.BinOp, *ast.UnaryOp, *ast.Compare, *ast.IfExp, *ast.Lambda:
		t.e.token("(")
		if err := t.expr(x); err != nil {
			return err
		}
		t.e.token(")")
		return nil
	}
	return t.expr(x)
}

// group renders elts separated by ", " between open and close.
func (t *Translator) group(open, close string, elts []ast.Expr) error {
	t.e.token(open)
	for i, elt := range elts {
		if i > 0 {
			t.e.token(",")
			t.e.space()
		}
		if err := t.expr(elt); err != nil {
			return err
		}
	}
	t.e.token(close)
	return nil
}

func (t *Translator) boolOp(n *ast.BoolOp) error {
	op := "&&"
	if n.Op == ast.Or {
		op = "||"
	}
	for i, v := range n.Values {
		if i > 0 {
			t.e.space()
			t.e.token(op)
			t.e.space()
		}
		if err := t.operand(v); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) binOp(n *ast.BinOp) error {
	if tmpl, ok := n.Left.(*ast.Str); ok && n.Op == ast.Modulo {
		return t.format(n, string(tmpl.S))
	}

	if err := t.operand(n.Left); err != nil {
		return err
	}
	switch n.Op {
	case ast.Pow:
		t.e.token(".pow(")
		if err := t.expr(n.Right); err != nil {
			return err
		}
		t.e.token(")")
		return nil
	case ast.FloorDiv:
		t.e.space()
		t.e.mismatch("/* floor */")
		t.e.space()
		t.e.token("/")
	default:
		op, ok := binaryOperator(n.Op)
		if !ok {
			return malformed(n, "unknown binary operator %d", n.Op)
		}
		t.e.space()
		t.e.token(op)
	}
	t.e.space()
	return t.operand(n.Right)
}

// format rewrites `"template" % args` into format!. The right operand is
// either a tuple matching the placeholder count or a single value for a
// single placeholder.
func (t *Translator) format(n *ast.BinOp, template string) error {
	rewritten, placeholders, ok := formatTemplate(template)
	if !ok {
		return unsupported(n, "format template %q uses mapping keys or an incomplete conversion", template)
	}

	var args []ast.Expr
	if tuple, isTuple := n.Right.(*ast.Tuple); isTuple {
		if len(tuple.Elts) != placeholders {
			return malformed(n, "format template has %d placeholders but %d arguments", placeholders, len(tuple.Elts))
		}
		args = tuple.Elts
	} else {
		if placeholders != 1 {
			return unsupported(n, "format template with %d placeholders needs a tuple of arguments", placeholders)
		}
		args = []ast.Expr{n.Right}
	}

	t.e.token("format!(", rustString(rewritten))
	for _, arg := range args {
		t.e.token(",")
		t.e.space()
		if err := t.expr(arg); err != nil {
			return err
		}
	}
	t.e.token(")")
	return nil
}

func (t *Translator) unaryOp(n *ast.UnaryOp) error {
	switch n.Op {
	case ast.Not, ast.Invert:
		t.e.token("!")
	case ast.USub:
		t.e.token("-")
	case ast.UAdd:
	default:
		return malformed(n, "unknown unary operator %d", n.Op)
	}
	return t.operand(n.Operand)
}

func (t *Translator) ifExp(n *ast.IfExp) error {
	t.e.token("if")
	t.e.space()
	if err := t.expr(n.Test); err != nil {
		return err
	}
	t.e.space()
	t.e.token("{")
	t.e.space()
	if err := t.expr(n.Body); err != nil {
		return err
	}
	t.e.space()
	t.e.token("}")
	t.e.space()
	t.e.token("else")
	t.e.space()
	t.e.token("{")
	t.e.space()
	if err := t.expr(n.Orelse); err != nil {
		return err
	}
	t.e.space()
	t.e.token("}")
	return nil
}

func (t *Translator) dict(n *ast.Dict) error {
	if len(n.Keys) != len(n.Values) {
		return malformed(n, "dict has %d keys and %d values", len(n.Keys), len(n.Values))
	}
	if len(n.Keys) == 0 {
		t.e.token("HashMap::new()")
		return nil
	}
	t.e.token("hashmap!{")
	for i := range n.Keys {
		if i > 0 {
			t.e.token(",")
			t.e.space()
		}
		if err := t.expr(n.Keys[i]); err != nil {
			return err
		}
		t.e.space()
		t.e.token("=>")
		t.e.space()
		if err := t.expr(n.Values[i]); err != nil {
			return err
		}
	}
	t.e.token("}")
	return nil
}

// compare expects exactly one operator. Membership becomes a keyed lookup
// on the right operand; identity is approximated by equality and flagged.
func (t *Translator) compare(n *ast.Compare) error {
	if len(n.Ops) != 1 || len(n.Comparators) != 1 {
		return malformed(n, "expected exactly one comparison operator, got %d", len(n.Ops))
	}
	op, right := n.Ops[0], n.Comparators[0]

	switch op {
	case ast.In, ast.NotIn:
		if op == ast.NotIn {
			t.e.token("!")
		}
		if err := t.operand(right); err != nil {
			return err
		}
		t.e.token(".contains_key(&")
		if err := t.operand(n.Left); err != nil {
			return err
		}
		t.e.token(")")
		return nil
	}

	if err := t.operand(n.Left); err != nil {
		return err
	}
	t.e.space()
	switch op {
	case ast.Is:
		t.e.mismatch("/* is */")
		t.e.space()
		t.e.token("==")
	case ast.IsNot:
		t.e.mismatch("/* is not */")
		t.e.space()
		t.e.token("!=")
	default:
		sym, ok := compareOperator(op)
		if !ok {
			return malformed(n, "unknown comparison operator %d", op)
		}
		t.e.token(sym)
	}
	t.e.space()
	return t.operand(right)
}

// call keeps keyword arguments positionally, naming each in a marker.
func (t *Translator) call(n *ast.Call) error {
	if n.Starargs != nil {
		return unsupported(n, "*args in calls are not translated")
	}
	if n.Kwargs != nil {
		return unsupported(n, "**kwargs in calls are not translated")
	}
	if err := t.operand(n.Func); err != nil {
		return err
	}
	t.e.token("(")
	first := true
	sep := func() {
		if !first {
			t.e.token(",")
			t.e.space()
		}
		first = false
	}
	for _, arg := range n.Args {
		sep()
		if err := t.expr(arg); err != nil {
			return err
		}
	}
	for _, kw := range n.Keywords {
		sep()
		t.e.mismatch("/* " + string(kw.Arg) + "= */")
		t.e.space()
		if err := t.expr(kw.Value); err != nil {
			return err
		}
	}
	t.e.token(")")
	return nil
}

func (t *Translator) num(n *ast.Num) error {
	switch v := n.N.(type) {
	case py.Int:
		t.e.token(strconv.FormatInt(int64(v), 10))
	case *py.BigInt:
		t.e.token((*big.Int)(v).String())
	case py.Float:
		t.e.token(rustFloat(float64(v)))
	case py.Complex:
		return unsupported(n, "complex literals are not translated")
	default:
		return malformed(n, "unexpected numeric payload %T", n.N)
	}
	return nil
}

func (t *Translator) nameConstant(n *ast.NameConstant) error {
	switch n.Value {
	case py.True:
		t.e.token("true")
	case py.False:
		t.e.token("false")
	case py.None:
		t.e.token("None")
	default:
		return malformed(n, "unexpected constant %v", n.Value)
	}
	return nil
}

func (t *Translator) subscript(n *ast.Subscript) error {
	if err := t.operand(n.Value); err != nil {
		return err
	}
	t.e.token("[")
	switch s := n.Slice.(type) {
	case *ast.Index:
		if err := t.expr(s.Value); err != nil {
			return err
		}
	case *ast.Slice:
		if s.Step != nil {
			return unsupported(n, "slice steps are not translated")
		}
		if s.Lower != nil {
			if err := t.operand(s.Lower); err != nil {
				return err
			}
		}
		t.e.token("..")
		if s.Upper != nil {
			if err := t.operand(s.Upper); err != nil {
				return err
			}
		}
	case *ast.ExtSlice:
		return unsupported(n, "extended slices are not translated")
	default:
		return malformed(n, "unexpected slice %T", n.Slice)
	}
	t.e.token("]")
	return nil
}
