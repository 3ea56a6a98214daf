package transpile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// rustString renders s as a Rust string literal. Printable characters are
// kept verbatim; control and non-printable characters use Rust escapes.
func rustString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				sb.WriteRune(r)
			} else {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// rustBytes renders b as a Rust byte string literal.
func rustBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteString(`b"`)
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// rustFloat renders f so that Rust reads it back as a float literal.
func rustFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "f64::INFINITY"
	case math.IsInf(f, -1):
		return "f64::NEG_INFINITY"
	case math.IsNaN(f):
		return "f64::NAN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// printfConversions are the conversion characters of %-style templates.
const printfConversions = "sdirfFgGeExXoc"

// formatTemplate rewrites a %-style template into a format! template:
// every conversion becomes {}, %% becomes %, and literal braces are doubled.
// It returns the rewritten template and the number of placeholders. ok is
// false for templates that use mapping keys (%(name)s) or end mid-conversion.
func formatTemplate(tmpl string) (out string, placeholders int, ok bool) {
	var sb strings.Builder
	runes := []rune(tmpl)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{':
			sb.WriteString("{{")
			continue
		case '}':
			sb.WriteString("}}")
			continue
		case '%':
		default:
			sb.WriteRune(r)
			continue
		}

		// Conversion specifier: flags, width, precision, length, type.
		j := i + 1
		if j < len(runes) && runes[j] == '%' {
			sb.WriteByte('%')
			i = j
			continue
		}
		if j < len(runes) && runes[j] == '(' {
			return "", 0, false
		}
		for j < len(runes) && strings.ContainsRune("#0- +.*123456789hlL", runes[j]) {
			j++
		}
		if j >= len(runes) || !strings.ContainsRune(printfConversions, runes[j]) {
			return "", 0, false
		}
		sb.WriteString("{}")
		placeholders++
		i = j
	}
	return sb.String(), placeholders, true
}
