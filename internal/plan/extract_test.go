package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraceSpanExtractor(t *testing.T) {
	x := BraceSpanExtractor{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "prose around object",
			in:   `blah {"a":1} blah`,
			want: `{"a":1}`,
		},
		{
			name: "no braces returns input unchanged",
			in:   "no json here",
			want: "no json here",
		},
		{
			name: "closing before opening returns input unchanged",
			in:   "} nope {",
			want: "} nope {",
		},
		{
			name: "nested object kept whole",
			in:   `x {"a":{"b":2}} y`,
			want: `{"a":{"b":2}}`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.Extract(tt.in))
		})
	}
}
