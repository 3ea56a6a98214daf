package transpile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDoc(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single line",
			in:   "Summary.",
			want: []string{"Summary."},
		},
		{
			name: "indented body",
			in:   "Summary.\n\n    Details here.\n      Nested.\n    ",
			want: []string{"Summary.", "", "Details here.", "  Nested."},
		},
		{
			name: "leading blank lines dropped",
			in:   "\n    First.\n    Second.\n",
			want: []string{"First.", "Second."},
		},
		{
			name: "tabs expanded",
			in:   "Top.\n\tTabbed.",
			want: []string{"Top.", "Tabbed."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanDoc(tt.in))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "ab      c", expandTabs("ab\tc", 8))
	assert.Equal(t, "x\n    y", expandTabs("x\n\ty", 4))
}
