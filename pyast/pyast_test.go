package pyast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-python/gpython/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/py2rs/errors"
)

func TestParseString(t *testing.T) {
	mod, err := ParseString("x = 1\nprint(x)\n", "<test>")
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	assign, ok := mod.Body[0].(*ast.Assign)
	require.True(t, ok, "first statement should be an assignment, got %T", mod.Body[0])
	assert.Equal(t, "Assign", KindOf(assign))

	line, _ := Position(mod.Body[1])
	assert.Equal(t, 2, line)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := ParseString("def broken(:\n", "broken.py")
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
	assert.Contains(t, err.Error(), "broken.py")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o644))

	mod, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	assert.Equal(t, "Import", KindOf(mod.Body[0]))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDump(t *testing.T) {
	mod, err := ParseString("del x\n", "<test>")
	require.NoError(t, err)

	dump := Dump(mod.Body[0])
	assert.True(t, strings.HasPrefix(dump, "Delete("), "unexpected dump %q", dump)
	assert.Contains(t, dump, "x")
}

func TestNilNodes(t *testing.T) {
	var name *ast.Name
	assert.Equal(t, "None", KindOf(nil))
	assert.Equal(t, "None", KindOf(name))
	assert.Equal(t, "None", Dump(name))
	line, col := Position(nil)
	assert.Zero(t, line)
	assert.Zero(t, col)
}
