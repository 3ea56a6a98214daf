package transpile

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterIndentFollowsDepth(t *testing.T) {
	s := NewScope()
	e := &emitter{scope: s, indent: "  "}

	e.token("a")
	s.Push(Function)
	e.newline()
	e.token("b")
	s.Push(LoopBlock)
	e.newline()
	s.Pop()
	s.Pop()
	e.newline()

	want := []Fragment{
		{Kind: TokenFragment, Text: "a"},
		{Kind: NewlineFragment, Text: "\n  "},
		{Kind: TokenFragment, Text: "b"},
		{Kind: NewlineFragment, Text: "\n    "},
		{Kind: NewlineFragment, Text: "\n"},
	}
	stream := &Stream{fragments: e.out}
	if diff := cmp.Diff(want, stream.Fragments()); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitterCapture(t *testing.T) {
	e := &emitter{scope: NewScope(), indent: "    "}
	e.token("before")

	text, err := e.capture(func() error {
		e.token("x", ".", "y")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "x.y", text)
	assert.Len(t, e.out, 1, "captured fragments are removed from the stream")
}

func TestStreamOutput(t *testing.T) {
	stream := &Stream{fragments: []Fragment{
		{Kind: TokenFragment, Text: "a"},
		{Kind: SpaceFragment, Text: " "},
		{Kind: MismatchFragment, Text: "/* is */"},
		{Kind: SpaceFragment, Text: " "},
		{Kind: TokenFragment, Text: "=="},
	}}

	assert.Equal(t, "a /* is */ ==", stream.String())
	assert.Equal(t, 5, stream.Len())
	assert.Equal(t, 1, stream.Markers())

	var buf bytes.Buffer
	n, err := stream.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("a /* is */ ==")), n)
	assert.Equal(t, stream.String(), buf.String())
}

func TestStreamFragmentsIsCopy(t *testing.T) {
	stream := &Stream{fragments: []Fragment{{Kind: TokenFragment, Text: "a"}}}
	frags := stream.Fragments()
	frags[0].Text = "changed"
	assert.Equal(t, "a", stream.String())
}
