package transpile

import (
	"strings"
	"testing"

	"github.com/go-python/gpython/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/pyast"
)

// =============================================================================
// Test helpers
// =============================================================================

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := pyast.ParseString(src, "test.py")
	require.NoError(t, err)
	return mod
}

func translate(t *testing.T, src string) string {
	t.Helper()
	return translateWith(t, src, DefaultOptions())
}

func translateWith(t *testing.T, src string, opts Options) string {
	t.Helper()
	stream, err := Translate(parse(t, src), opts)
	require.NoError(t, err)
	return stream.String()
}

func translateErr(t *testing.T, src string) *TranslateError {
	t.Helper()
	stream, err := Translate(parse(t, src), DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, stream, "a failed run must not yield partial output")
	te, ok := AsTranslateError(err)
	require.True(t, ok, "expected *TranslateError, got %T: %v", err, err)
	return te
}

// =============================================================================
// Whole-module output
// =============================================================================

func TestTranslateRaiseInsideConditional(t *testing.T) {
	src := `def check(x):
    if x < 0:
        raise ValueError("negative")
    return x
`
	want := "/* module */\n" +
		"fn check(x) {\n" +
		"    if x < 0 {\n" +
		"        return Err(ValueError(\"negative\"));\n" +
		"    }\n" +
		"    return x;\n" +
		"}\n"
	assert.Equal(t, want, translate(t, src))
}

func TestTranslateFragments(t *testing.T) {
	stream, err := Translate(parse(t, "pass\n"), DefaultOptions())
	require.NoError(t, err)

	want := []Fragment{
		{Kind: CommentFragment, Text: "/* module */"},
		{Kind: NewlineFragment, Text: "\n"},
		{Kind: CommentFragment, Text: "/* pass */"},
		{Kind: NewlineFragment, Text: "\n"},
	}
	if diff := cmp.Diff(want, stream.Fragments()); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateDeterministic(t *testing.T) {
	src := `"""Module doc."""
import os.path as osp

LIMIT = 10

class Reader(Base):
    def read(self, path, n: int) -> str:
        with open(path) as fh:
            data = fh.read(n)
        if "x" in data:
            return "%s/%d" % (path, n)
        return data
`
	mod := parse(t, src)
	for _, opts := range []Options{DefaultOptions(), {Signatures: SignaturesGeneric}} {
		first, err := Translate(mod, opts)
		require.NoError(t, err)
		second, err := Translate(mod, opts)
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	}
}

func TestTranslateCustomIndent(t *testing.T) {
	out := translateWith(t, "def f():\n    return 1\n", Options{Indent: "\t"})
	assert.Contains(t, out, "fn f() {\n\treturn 1;\n}")
}

// =============================================================================
// Scope balance
// =============================================================================

func TestScopeBalancedAfterTraversal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{
			name: "nested blocks",
			src: `class A:
    def f(self):
        for i in y:
            while i:
                with g() as h:
                    try:
                        pass
                    except E as e:
                        raise
`,
			ok: true,
		},
		{
			name: "error deep inside nested blocks",
			src: `def f():
    for i in y:
        if i:
            del i
`,
			ok: false,
		},
		{
			name: "error inside second handler",
			src: `try:
    pass
except A:
    pass
except B:
    [x for x in y]
`,
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(DefaultOptions())
			_, err := tr.Translate(parse(t, tt.src))
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, 0, tr.scope.Depth())
		})
	}
}

// =============================================================================
// Docstrings
// =============================================================================

func TestDocstrings(t *testing.T) {
	src := `"""Tools.

Second line.
"""

def f():
    """Summary.

    Details here.
    """
    return 1

class C:
    """A class."""
    pass
`
	out := translate(t, src)

	assert.Contains(t, out, "/* module */\n//! Tools.\n//!\n//! Second line.\nfn f() {")
	assert.Contains(t, out, "fn f() {\n    //! Summary.\n    //!\n    //! Details here.\n    return 1;\n}")
	assert.Contains(t, out, "impl C {\n    //! A class.\n    /* pass */\n}")
	assert.NotContains(t, out, `"Summary.`, "the docstring statement must not be emitted again")
}

// =============================================================================
// Declarations
// =============================================================================

func TestAssignmentForms(t *testing.T) {
	src := `X = 1
X = 2
type = 3
p, q = 1, 2
m = n = 0

def f():
    y = 1
    y = 2
    a, b = pair
    c = d = 0
    obj.attr = 5
    for i in range(3):
        y = i
        z = i
    X = 4

class K:
    ATTR = 1
    A, B = 1, 2
`
	out := translate(t, src)

	for _, want := range []string{
		"\nconst X: Unknown = 1;",
		"\nX = 2;",
		"\nconst r#type: Unknown = 3;",
		"\nconst (p, q): Unknown = (1, 2);",
		"\nconst (m, n): Unknown = 0;",
		"\n    let y = 1;",
		"\n    y = 2;",
		"\n    let (a, b) = pair;",
		"\n    let (c, d) = 0;",
		"\n    obj.attr = 5;",
		"\n    for i in range(3) {",
		"\n        y = i;",
		"\n        let z = i;",
		"\n    let X = 4;",
		"impl K {\n    const ATTR: Unknown = 1;\n    const (A, B): Unknown = (1, 2);\n}",
	} {
		assert.Contains(t, out, want)
	}
}

func TestLoopTargetsBoundByLoop(t *testing.T) {
	out := translate(t, `def f():
    for k, v in items:
        k = v
    while running:
        step = 1
        step = 2
`)
	assert.Contains(t, out, "for (k, v) in items {\n        k = v;\n    }")
	assert.Contains(t, out, "while running {\n        let step = 1;\n        step = 2;\n    }")
}

// =============================================================================
// Exception handling
// =============================================================================

func TestTrySingleHandler(t *testing.T) {
	stream, err := Translate(parse(t, `try:
    x = f()
except ValueError as e:
    raise
`), DefaultOptions())
	require.NoError(t, err)

	want := "/* module */\n" +
		"if /* try */ {\n" +
		"    let x = f();\n" +
		"} else {\n" +
		"    /* except ValueError as e */\n" +
		"    return Err(e); /* re-raise */\n" +
		"}\n"
	assert.Equal(t, want, stream.String())
	assert.NotContains(t, stream.String(), "multiple handlers")
}

func TestTryMultipleHandlers(t *testing.T) {
	out := translate(t, `try:
    g()
except KeyError:
    pass
except ValueError as e:
    pass
except:
    pass
finally:
    cleanup()
`)

	want := "if /* try */ {\n" +
		"    g();\n" +
		"} else {\n" +
		"    unimplemented!(\"multiple handlers\");\n" +
		"    /* except KeyError */ {\n" +
		"        /* pass */\n" +
		"    }\n" +
		"    /* except ValueError as e */ {\n" +
		"        /* pass */\n" +
		"    }\n" +
		"    /* except */ {\n" +
		"        /* pass */\n" +
		"    }\n" +
		"}\n" +
		"/* finally */ {\n" +
		"    cleanup();\n" +
		"}"
	assert.Contains(t, out, want)
	assert.Equal(t, 1, strings.Count(out, "multiple handlers"))
}

func TestRaiseForms(t *testing.T) {
	out := translate(t, `def f():
    raise KeyError("k") from err
`)
	assert.Contains(t, out, `return Err(KeyError("k")); /* from err */`)

	te := translateErr(t, "def f():\n    raise\n")
	assert.Equal(t, "Raise", te.NodeKind)
	assert.True(t, errors.Is(te, ErrUnsupportedConstruct))
}

// =============================================================================
// Expressions
// =============================================================================

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"membership", "x in d\n", "d.contains_key(&x);"},
		{"negated membership", "x not in d\n", "!d.contains_key(&x);"},
		{"membership on attribute", "k in self.cache\n", "self.cache.contains_key(&k);"},
		{"membership compound key", "x + 1 in d\n", "d.contains_key(&(x + 1));"},
		{"two placeholder format", `"%s and %d" % (a, b)` + "\n", `format!("{} and {}", a, b);`},
		{"single placeholder format", `"<%s>" % name` + "\n", `format!("<{}>", name);`},
		{"identity", "a is None\n", "a /* is */ == None;"},
		{"negated identity", "a is not b\n", "a /* is not */ != b;"},
		{"power", "a ** 2\n", "a.pow(2);"},
		{"floor division", "a // b\n", "a /* floor */ / b;"},
		{"nested binary", "a + b * c\n", "a + (b * c);"},
		{"boolean", "a and not b or c\n", "(a && (!b)) || c;"},
		{"unary", "-x + +y\n", "(-x) + (y);"},
		{"conditional", "a if t else b\n", "if t { a } else { b };"},
		{"lambda", "f = lambda a, b: a + b\n", "const f: Unknown = |a, b| a + b;"},
		{"keywords", "f(a, key=1)\n", "f(a, /* key= */ 1);"},
		{"empty list", "x = []\n", "const x: Unknown = Vec::new();"},
		{"list", "[1, 2]\n", "vec![1, 2];"},
		{"empty dict", "{}\n", "HashMap::new();"},
		{"dict", "{'a': 1, 'b': 2}\n", `hashmap!{"a" => 1, "b" => 2};`},
		{"set", "{1, 2}\n", "hashset!{1, 2};"},
		{"tuple", "(1, 2)\n", "(1, 2);"},
		{"one tuple", "(1,)\n", "(1,);"},
		{"empty tuple", "()\n", "();"},
		{"constants", "(True, False, None)\n", "(true, false, None);"},
		{"float", "1.0 + 2.5\n", "1.0 + 2.5;"},
		{"bytes", "b'a\\n'\n", `b"a\n";`},
		{"index", "v[i]\n", "v[i];"},
		{"slice", "v[1:n]\n", "v[1..n];"},
		{"open slice", "v[:n]\n", "v[..n];"},
		{"keyword identifier", "match.group(1)\n", "r#match.group(1);"},
		{"augmented", "x += 1\n", "x += 1;"},
		{"augmented power", "x **= 2\n", "x = x.pow(2);"},
		{"augmented floor", "x //= 2\n", "x /* floor */ /= 2;"},
		{"assert", "assert ok\n", "assert!(ok);"},
		{"assert message", "assert ok, 'bad'\n", `assert!(ok, "{}", "bad");`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, translate(t, tt.src), tt.want)
		})
	}
}

func TestMismatchMarkersCounted(t *testing.T) {
	stream, err := Translate(parse(t, "a is b\nf(k=1)\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, stream.Markers())
}

// =============================================================================
// Statements
// =============================================================================

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"import", "import os\n", "use os;"},
		{"dotted import alias", "import os.path as osp\n", "use os::path as osp;"},
		{"several imports", "import a, b\n", "use a;\nuse b;"},
		{"from import", "from m import x\n", "use m::x;"},
		{"from import group", "from ..pkg import a, b as c\n", "use super::super::pkg::{a, b as c};"},
		{"relative import", "from . import x\n", "use super::x;"},
		{"glob import", "from m import *\n", "use m::*;"},
		{
			"if elif else",
			"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
			"if a {\n    /* pass */\n} else if b {\n    /* pass */\n} else {\n    /* pass */\n}",
		},
		{
			"with block",
			"def f():\n    with open(p) as fh, lock:\n        fh.read()\n",
			"fn f() {\n" +
				"    { /* <with block> */\n" +
				"        let fh = open(p);\n" +
				"        let _ = lock;\n" +
				"        /* <-> */\n" +
				"        fh.read();\n" +
				"    } /* </with block> */\n" +
				"}",
		},
		{
			"loop control",
			"while True:\n    break\n    continue\n",
			"while true {\n    break;\n    continue;\n}",
		},
		{"bare return", "def f():\n    return\n", "fn f() {\n    return;\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, translate(t, tt.src), tt.want)
		})
	}
}

// =============================================================================
// Functions and classes
// =============================================================================

func TestSignatureModes(t *testing.T) {
	src := `@cached
class A(Base, Mixin):
    @staticmethod
    def f(self, a, b: int, c) -> str:
        return a
`
	untyped := translateWith(t, src, Options{Signatures: SignaturesUntyped})
	assert.Contains(t, untyped, "/* @cached */\nimpl A /* extends Base, Mixin */ {")
	assert.Contains(t, untyped, "    /* @staticmethod */\n    fn f(&self, a, b: int, c) -> str {")

	generic := translateWith(t, src, Options{Signatures: SignaturesGeneric})
	assert.Contains(t, generic, "fn f<T0, T1>(&self, a: T0, b: int, c: T1) -> str {")
}

func TestParseSignatureMode(t *testing.T) {
	m, err := ParseSignatureMode("Generic")
	require.NoError(t, err)
	assert.Equal(t, SignaturesGeneric, m)

	_, err = ParseSignatureMode("typed")
	assert.Error(t, err)
}

// =============================================================================
// Fatal constructs
// =============================================================================

func TestFatalConstructs(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		nodeKind string
		kind     ErrorKind
	}{
		{"list comprehension", "x = [i for i in y]\n", "ListComp", KindUnsupported},
		{"set comprehension", "x = {i for i in y}\n", "SetComp", KindUnsupported},
		{"dict comprehension", "x = {i: i for i in y}\n", "DictComp", KindUnsupported},
		{"generator expression", "f(i for i in y)\n", "GeneratorExp", KindUnsupported},
		{"deletion", "del x\n", "Delete", KindUnsupported},
		{"default parameter", "def f(a=1):\n    pass\n", "FunctionDef", KindUnsupported},
		{"variable-length parameter", "def f(*args):\n    pass\n", "FunctionDef", KindUnsupported},
		{"keyword-only parameter", "def f(*, k):\n    pass\n", "FunctionDef", KindUnsupported},
		{"keyword parameter", "def f(**kw):\n    pass\n", "FunctionDef", KindUnsupported},
		{"lambda default", "f = lambda a=1: a\n", "Lambda", KindUnsupported},
		{"global", "def f():\n    global x\n", "Global", KindUnsupported},
		{"yield", "def f():\n    yield 1\n", "Yield", KindUnsupported},
		{"bare raise in function nested in handler", "try:\n    pass\nexcept E as e:\n    def g():\n        raise\n", "Raise", KindUnsupported},
		{"try else", "try:\n    pass\nexcept E:\n    pass\nelse:\n    pass\n", "Try", KindUnsupported},
		{"for else", "for i in y:\n    pass\nelse:\n    pass\n", "For", KindUnsupported},
		{"slice step", "v[::2]\n", "Subscript", KindUnsupported},
		{"call star args", "f(*a)\n", "Call", KindUnsupported},
		{"mapping format", `"%(a)s" % d` + "\n", "BinOp", KindUnsupported},
		{"chained comparison", "a < b < c\n", "Compare", KindMalformed},
		{"format arity", `"%s %s" % (a,)` + "\n", "BinOp", KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := translateErr(t, tt.src)
			assert.Equal(t, tt.nodeKind, te.NodeKind)
			assert.Equal(t, tt.kind, te.Kind)
			assert.NotEmpty(t, te.Dump)
			assert.Greater(t, te.Line, 0)
		})
	}
}

func TestTranslateErrorSentinels(t *testing.T) {
	te := translateErr(t, "x = [i for i in y]\n")
	assert.True(t, errors.Is(te, ErrUnsupportedConstruct))
	assert.False(t, errors.Is(te, ErrMalformedAssumption))
	assert.NotEmpty(t, te.Hint)
	assert.Contains(t, te.Error(), "unsupported construct ListComp at line 1")
	assert.Contains(t, te.Dump, "ListComp(")

	te = translateErr(t, "a < b < c\n")
	assert.True(t, errors.Is(te, ErrMalformedAssumption))
	assert.Contains(t, te.Error(), "malformed input Compare")
}

func TestTranslateNilModule(t *testing.T) {
	_, err := Translate(nil, DefaultOptions())
	assert.Error(t, err)
}
