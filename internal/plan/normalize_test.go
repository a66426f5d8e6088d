package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced with json tag",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "fenced with uppercase tag",
			in:   "```JSON\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "fenced without tag",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "already clean",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n {\"a\":1} \n",
			want: `{"a":1}`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "json word without fence stays",
			in:   `json {"a":1}`,
			want: `json {"a":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"```\n[1,2]\n```",
		`{"a":1}`,
		"",
		"   plain prose   ",
		"```json\njson\n```",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once), "input %q", in)
	}
}
