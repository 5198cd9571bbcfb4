package normalize

import (
	"regexp"
	"sort"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// CanonicalName normalizes a physician name for key comparison: uppercase,
// commas become spaces, whitespace collapses, and tokens are sorted so that
// "FALLONE, JAN" and "jan fallone" compare equal.
func CanonicalName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, ",", " ")
	tokens := strings.Fields(multiSpace.ReplaceAllString(s, " "))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// DisplayName trims and collapses whitespace without changing case.
func DisplayName(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}
