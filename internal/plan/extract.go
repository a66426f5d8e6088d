package plan

import "strings"

// Extractor isolates the JSON object inside normalized model text. It is
// an interface so the heuristic below can be swapped for a balanced-brace
// scanner without touching callers.
type Extractor interface {
	Extract(s string) string
}

// BraceSpanExtractor returns the inclusive substring from the first '{'
// to the last '}'. Known limitation: prose containing stray braces outside
// the JSON object can make it over- or under-include text.
type BraceSpanExtractor struct{}

func (BraceSpanExtractor) Extract(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
