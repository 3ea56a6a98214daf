package transpile

import (
	"io"
	"strings"
)

// FragmentKind classifies a piece of output text.
type FragmentKind int

const (
	// TokenFragment is a keyword, identifier, operator, punctuation or literal.
	TokenFragment FragmentKind = iota
	// SpaceFragment is a single separating space.
	SpaceFragment
	// NewlineFragment is a line break followed by the indentation run.
	NewlineFragment
	// CommentFragment is a comment carried over from the source (docstrings, headers).
	CommentFragment
	// MismatchFragment flags an approximate translation for human review.
	MismatchFragment
)

// Fragment is one immutable piece of output.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Stream is the ordered output of one traversal.
type Stream struct {
	fragments []Fragment
}

// Fragments returns a copy of the fragments in emission order.
func (s *Stream) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Len is the number of fragments.
func (s *Stream) Len() int {
	return len(s.fragments)
}

// Markers counts the approximation markers in the stream.
func (s *Stream) Markers() int {
	n := 0
	for _, f := range s.fragments {
		if f.Kind == MismatchFragment {
			n++
		}
	}
	return n
}

// String joins the fragments with no added separators.
func (s *Stream) String() string {
	var sb strings.Builder
	for _, f := range s.fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// WriteTo writes the fragments to w in order.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range s.fragments {
		n, err := io.WriteString(w, f.Text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// emitter appends fragments in traversal order. Indentation is derived from
// the scope depth at the time a line break is emitted.
type emitter struct {
	out    []Fragment
	scope  *Scope
	indent string
}

func (e *emitter) token(texts ...string) {
	for _, text := range texts {
		e.out = append(e.out, Fragment{Kind: TokenFragment, Text: text})
	}
}

func (e *emitter) space() {
	e.out = append(e.out, Fragment{Kind: SpaceFragment, Text: " "})
}

func (e *emitter) newline() {
	e.out = append(e.out, Fragment{
		Kind: NewlineFragment,
		Text: "\n" + strings.Repeat(e.indent, e.scope.Depth()),
	})
}

func (e *emitter) comment(text string) {
	e.out = append(e.out, Fragment{Kind: CommentFragment, Text: text})
}

func (e *emitter) mismatch(text string) {
	e.out = append(e.out, Fragment{Kind: MismatchFragment, Text: text})
}

// capture runs fn and returns the text it emitted, removing it from the
// stream. Used for expressions folded into comments.
func (e *emitter) capture(fn func() error) (string, error) {
	mark := len(e.out)
	err := fn()
	var sb strings.Builder
	for _, f := range e.out[mark:] {
		sb.WriteString(f.Text)
	}
	e.out = e.out[:mark]
	return sb.String(), err
}
