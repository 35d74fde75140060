package normalization

import "strings"

// ParseInputString trims surrounding whitespace from user-provided input.
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// ParseEmail lowercases in addition to trimming so uniqueness checks are
// case-insensitive.
func ParseEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseUsername lowercases in addition to trimming.
func ParseUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
