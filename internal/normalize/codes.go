package normalize

import "strings"

// KeyField trims and uppercases a free-text identifier (patient id,
// procedure description) for use inside a match key.
func KeyField(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// GroupLabel returns an uppercased display label, or fallback when s is blank.
func GroupLabel(s, fallback string) string {
	s = strings.ToUpper(DisplayName(s))
	if s == "" {
		return fallback
	}
	return s
}
