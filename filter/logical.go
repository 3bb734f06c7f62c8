package filter

// constMatcher ignores the subject.
type constMatcher bool

// allOf accepts a subject when every member does. anyOf accepts it when at
// least one member does. Both evaluate members in order and stop early.
type (
	allOf []Matcher
	anyOf []Matcher
)

type notMatcher struct{ inner Matcher }

// TRUE accepts every subject.
func TRUE() Matcher { return constMatcher(true) }

// FALSE rejects every subject.
func FALSE() Matcher { return constMatcher(false) }

// Not inverts m.
func Not(m Matcher) Matcher {
	switch v := m.(type) {
	case constMatcher:
		return !v
	case notMatcher:
		return v.inner
	}
	return notMatcher{inner: m}
}

// And accepts a subject only when all of ms do. And() is TRUE.
func And(ms ...Matcher) Matcher {
	var out allOf
	for _, m := range ms {
		switch v := m.(type) {
		case constMatcher:
			if !v {
				return FALSE()
			}
		case allOf:
			out = append(out, v...)
		default:
			out = append(out, m)
		}
	}
	switch len(out) {
	case 0:
		return TRUE()
	case 1:
		return out[0]
	}
	return out
}

// Or accepts a subject when any of ms does. Or() is FALSE.
func Or(ms ...Matcher) Matcher {
	var out anyOf
	for _, m := range ms {
		switch v := m.(type) {
		case constMatcher:
			if v {
				return TRUE()
			}
		case anyOf:
			out = append(out, v...)
		default:
			out = append(out, m)
		}
	}
	switch len(out) {
	case 0:
		return FALSE()
	case 1:
		return out[0]
	}
	return out
}

func (c constMatcher) Match([]byte) bool       { return bool(c) }
func (c constMatcher) MatchString(string) bool { return bool(c) }

func (n notMatcher) Match(b []byte) bool       { return !n.inner.Match(b) }
func (n notMatcher) MatchString(s string) bool { return !n.inner.MatchString(s) }

func (ms allOf) Match(b []byte) bool {
	for _, m := range ms {
		if !m.Match(b) {
			return false
		}
	}
	return true
}

func (ms allOf) MatchString(s string) bool {
	for _, m := range ms {
		if !m.MatchString(s) {
			return false
		}
	}
	return true
}

func (ms anyOf) Match(b []byte) bool {
	for _, m := range ms {
		if m.Match(b) {
			return true
		}
	}
	return false
}

func (ms anyOf) MatchString(s string) bool {
	for _, m := range ms {
		if m.MatchString(s) {
			return true
		}
	}
	return false
}
