package transpile

import (
	"strings"

	"github.com/go-python/gpython/ast"
)

// splitDocstring detects a leading docstring: the first statement being a
// bare string literal expression. It returns the docstring text and the
// remaining statements.
func splitDocstring(body []ast.Stmt) (doc string, rest []ast.Stmt, ok bool) {
	if len(body) == 0 {
		return "", body, false
	}
	stmt, isExpr := body[0].(*ast.ExprStmt)
	if !isExpr {
		return "", body, false
	}
	str, isStr := stmt.Value.(*ast.Str)
	if !isStr {
		return "", body, false
	}
	return string(str.S), body[1:], true
}

// cleanDoc normalises docstring indentation: tabs are expanded, the first
// line is left-trimmed, the common margin of the remaining lines is removed,
// and leading and trailing blank lines are dropped.
func cleanDoc(doc string) []string {
	lines := strings.Split(expandTabs(doc, 8), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		if indent := len(line) - len(content); margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " \t")
	for i := 1; i < len(lines); i++ {
		if margin > 0 && len(lines[i]) >= margin {
			lines[i] = lines[i][margin:]
		} else {
			lines[i] = strings.TrimLeft(lines[i], " ")
		}
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	lines[0] = strings.TrimRight(lines[0], " ")

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}

// expandTabs replaces tabs with spaces up to the next multiple of size.
func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}
