package plan

import "strings"

// NormalizeText strips Markdown code fences and a leading "json" language
// tag from raw model output. Best effort, never fails, and idempotent:
// once the fence is gone a second pass changes nothing.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "`", ""))
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}
