package filter

import (
	"context"
	"errors"

	"github.com/twinfer/keyglob"
)

// ErrPatternTooLong is returned when a pattern exceeds Limits.MaxPattern.
var ErrPatternTooLong = errors.New("pattern too long")

// Limits bounds what a filter accepts and how much work one match may do.
// Zero fields are unlimited.
type Limits struct {
	MaxPattern int // bytes
	MaxSubject int // bytes
	MaxSteps   int
	MaxDepth   int
}

func (l Limits) bounded() bool {
	return l.MaxSteps > 0 || l.MaxDepth > 0
}

// CheckSubject reports whether a subject of n bytes is within MaxSubject.
func (l Limits) CheckSubject(n int) bool {
	return l.MaxSubject <= 0 || n <= l.MaxSubject
}

// CheckPattern returns ErrPatternTooLong for patterns over MaxPattern.
func (l Limits) CheckPattern(pattern string) error {
	if l.MaxPattern > 0 && len(pattern) > l.MaxPattern {
		return ErrPatternTooLong
	}
	return nil
}

// boundedMatcher is a glob that abandons the match once it exceeds its step
// or depth budget and answers exhausted instead.
type boundedMatcher struct {
	pattern   []byte
	fold      bool
	lim       keyglob.Limits
	exhausted bool
}

// NewBoundedGlob is NewGlob for untrusted patterns. Subjects whose match
// would exceed lim.MaxSteps or lim.MaxDepth are rejected.
func NewBoundedGlob(pattern string, fold bool, lim Limits) Matcher {
	return newBoundedGlob(pattern, fold, lim, false)
}

func newBoundedGlob(pattern string, fold bool, lim Limits, exhausted bool) Matcher {
	m := NewGlob(pattern, fold)
	if _, ok := m.(globMatcher); !ok || !lim.bounded() {
		return m
	}
	return boundedMatcher{
		pattern:   []byte(pattern),
		fold:      fold,
		lim:       keyglob.Limits{MaxSteps: lim.MaxSteps, MaxDepth: lim.MaxDepth},
		exhausted: exhausted,
	}
}

func (m boundedMatcher) Match(b []byte) bool {
	ok, err := keyglob.MatchBounded(context.Background(), b, m.pattern, m.fold, m.lim)
	if err != nil {
		return m.exhausted
	}
	return ok
}

func (m boundedMatcher) MatchString(s string) bool {
	return m.Match([]byte(s))
}

type guardMatcher struct {
	Matcher
	maxSubject int
}

// Guard rejects subjects longer than lim.MaxSubject without consulting m.
func Guard(m Matcher, lim Limits) Matcher {
	if c, ok := m.(constMatcher); lim.MaxSubject <= 0 || (ok && !bool(c)) {
		return m
	}
	return guardMatcher{Matcher: m, maxSubject: lim.MaxSubject}
}

func (m guardMatcher) Match(b []byte) bool {
	return len(b) <= m.maxSubject && m.Matcher.Match(b)
}

func (m guardMatcher) MatchString(s string) bool {
	return len(s) <= m.maxSubject && m.Matcher.MatchString(s)
}
