package filter

import (
	"github.com/twinfer/keyglob"
)

type (
	// Matcher reports whether a subject is accepted by the filter.
	Matcher interface {
		Match(b []byte) bool
		MatchString(s string) bool
	}

	// literalMatcher is used for patterns with no wildcard bytes.
	literalMatcher struct {
		value string
		fold  bool
	}

	// globMatcher runs keyglob.Match.
	globMatcher struct {
		pattern []byte
		fold    bool
	}
)

// NewGlob returns a matcher for a single pattern. Patterns without wildcard
// bytes become a plain equality check.
func NewGlob(pattern string, fold bool) Matcher {
	switch {
	case pattern == "*":
		return TRUE()
	case !keyglob.HasWildcard([]byte(pattern)):
		return literalMatcher{value: pattern, fold: fold}
	default:
		return globMatcher{pattern: []byte(pattern), fold: fold}
	}
}

func (m literalMatcher) Match(b []byte) bool {
	if m.fold {
		return keyglob.EqualFold(b, []byte(m.value))
	}
	return string(b) == m.value
}

func (m literalMatcher) MatchString(s string) bool {
	if m.fold {
		return keyglob.EqualFold([]byte(s), []byte(m.value))
	}
	return s == m.value
}

func (m globMatcher) Match(b []byte) bool {
	return keyglob.Match(b, m.pattern, m.fold)
}

func (m globMatcher) MatchString(s string) bool {
	return keyglob.Match([]byte(s), m.pattern, m.fold)
}
