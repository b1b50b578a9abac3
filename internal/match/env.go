package match

import (
	"strings"

	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

// lengthHints are name fragments of environment variables known to hold
// lengths, such as safe-area-inset-top or titlebar-area-width.
var lengthHints = []string{"width", "height", "-x", "-y", "top", "right", "bottom", "left"}

// MatchEnv matches env(name, fallback) against the single component s,
// using a Matcher without a registry. fallback may be nil.
func MatchEnv(root, s *syntax.Syntax, name string, fallback value.Value) Result {
	return defaultMatcher.MatchEnv(root, s, name, fallback)
}

// MatchEnv matches env(name, fallback) against the single component s. A
// fallback literal decides the match against root. Without one the
// variable name is the only clue.
func (m *Matcher) MatchEnv(root, s *syntax.Syntax, name string, fallback value.Value) Result {
	if root == nil || s == nil {
		panic("match: nil syntax")
	}
	if s.IsUniversal() {
		return True
	}
	if fallback != nil && !value.IsDeferred(fallback) {
		return m.match(fallback, root, root)
	}
	if isLengthName(name) {
		switch s.Category() {
		case syntax.Length, syntax.LengthPercentage:
			return True
		}
		return False
	}
	return Pending
}

func isLengthName(name string) bool {
	name = strings.ToLower(name)
	for _, hint := range lengthHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}
