package formatters

import "strings"

// StripCodeFences removes a surrounding ```json / ``` markdown fence that
// models like to wrap JSON answers in.
func StripCodeFences(s string) string {
	clean := strings.TrimSpace(s)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	clean = strings.TrimPrefix(clean, "```")
	// drop an optional language tag on the opening fence
	if i := strings.IndexAny(clean, "\r\n"); i >= 0 && !strings.ContainsAny(clean[:i], "{[") {
		clean = clean[i:]
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ExtractObject returns the greedy brace-delimited block of s, from the first
// '{' to the last '}'. ok is false when no such block exists.
func ExtractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
