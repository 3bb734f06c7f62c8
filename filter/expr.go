package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyExpr is returned when a SimpleExpr has no patterns at all.
var ErrEmptyExpr = errors.New("empty expression")

// SimpleExpr accepts a subject that matches any include pattern and no
// exclude pattern. With no includes, every subject not excluded is accepted.
type SimpleExpr struct {
	Includes   []string `yaml:"includes,omitempty" json:"includes"`
	Excludes   []string `yaml:"excludes,omitempty" json:"excludes"`
	IgnoreCase bool     `yaml:"ignore_case,omitempty" json:"ignore_case"`
}

func (s *SimpleExpr) Empty() bool {
	return len(s.Includes) == 0 && len(s.Excludes) == 0
}

// Parse compiles the expression without limits.
func (s *SimpleExpr) Parse() (Matcher, error) {
	return s.ParseWithLimits(Limits{})
}

// ParseWithLimits compiles the expression, refusing patterns over
// lim.MaxPattern. When lim carries a step or depth budget the patterns are
// bounded: an include that runs out of budget does not accept the subject
// and an exclude that runs out of budget rejects it.
func (s *SimpleExpr) ParseWithLimits(lim Limits) (Matcher, error) {
	if s.Empty() {
		return nil, ErrEmptyExpr
	}

	accept := TRUE()
	if len(s.Includes) > 0 {
		m, err := s.compile(s.Includes, lim, false)
		if err != nil {
			return nil, err
		}
		accept = m
	}
	reject, err := s.compile(s.Excludes, lim, true)
	if err != nil {
		return nil, err
	}
	return Guard(And(accept, Not(reject)), lim), nil
}

// compile ORs patterns together. exhausted is the verdict a bounded pattern
// gives when it runs out of budget.
func (s *SimpleExpr) compile(patterns []string, lim Limits, exhausted bool) (Matcher, error) {
	ms := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		if err := lim.CheckPattern(p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		ms = append(ms, newBoundedGlob(p, s.IgnoreCase, lim, exhausted))
	}
	return Or(ms...), nil
}
