package filter

import "sync"

// DefaultCacheSize is the number of distinct subjects WithCache remembers.
const DefaultCacheSize = 4096

// memoMatcher remembers the verdicts of the first limit distinct subjects.
type memoMatcher struct {
	inner Matcher
	limit int

	mu      sync.RWMutex
	verdict map[string]bool
}

// WithCache remembers up to DefaultCacheSize verdicts of m.
func WithCache(m Matcher) Matcher {
	return WithCacheSize(m, DefaultCacheSize)
}

// WithCacheSize is WithCache with an explicit capacity. Once full, the cache
// keeps what it has and later subjects go straight to m.
func WithCacheSize(m Matcher, size int) Matcher {
	if _, ok := m.(constMatcher); ok || size <= 0 {
		return m
	}
	return &memoMatcher{inner: m, limit: size, verdict: make(map[string]bool, min(size, 64))}
}

func (m *memoMatcher) Match(b []byte) bool {
	m.mu.RLock()
	v, hit := m.verdict[string(b)]
	m.mu.RUnlock()
	if hit {
		return v
	}
	v = m.inner.Match(b)
	m.remember(string(b), v)
	return v
}

func (m *memoMatcher) MatchString(s string) bool {
	m.mu.RLock()
	v, hit := m.verdict[s]
	m.mu.RUnlock()
	if hit {
		return v
	}
	v = m.inner.MatchString(s)
	m.remember(s, v)
	return v
}

func (m *memoMatcher) remember(s string, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.verdict) < m.limit {
		m.verdict[s] = v
	}
}
