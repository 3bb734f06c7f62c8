// Package keyglob matches byte strings against glob-style patterns. It is
// meant for topic and key filtering, log-line filtering and subscription
// routing, where patterns arrive from configuration or clients and are
// checked against many subjects.
//
// Matching is byte oriented: no UTF-8 decoding takes place and the optional
// case folding only maps the ASCII letters A-Z onto a-z.
//
// # Pattern syntax:
//
//   - `*`: Matches any sequence of bytes, including none.
//   - `?`: Matches exactly one byte.
//   - `[abc]`, `[a-z]`: Matches one byte from the class. A leading `^`
//     negates it, `\x` inside a class is the literal byte x, and reversed
//     ranges such as `[z-a]` are accepted. A class that is never closed
//     makes its `[` an ordinary byte.
//   - `\x`: Matches the literal byte x.
//
// A pattern must match the whole subject. Interior stars are resolved by
// exhaustive backtracking, which is exponential in the worst case; use
// MatchBounded when patterns and subjects both come from untrusted input.
package keyglob

import (
	"context"

	"github.com/twinfer/keyglob/internal/wildcard"
)

var (
	// ErrStepBudget is returned by MatchBounded when Limits.MaxSteps is exceeded.
	ErrStepBudget = wildcard.ErrStepBudget
	// ErrDepthLimit is returned by MatchBounded when Limits.MaxDepth is exceeded.
	ErrDepthLimit = wildcard.ErrDepthLimit
)

// Limits caps the work done by MatchBounded. Zero fields are unlimited.
type Limits = wildcard.Limits

// Match reports whether subject matches pattern. Both slices may contain any
// byte value, including zero. When fold is true ASCII letters compare
// case-insensitively in literals, escapes and character classes alike.
//
// Match does not allocate and is safe for concurrent use.
func Match(subject, pattern []byte, fold bool) bool {
	return wildcard.Match(subject, pattern, fold)
}

// MatchLength is Match with explicit lengths: only the first subjectLen bytes
// of subject and patternLen bytes of pattern take part. Lengths outside
// [0, len(buf)] are clamped.
func MatchLength(subject []byte, subjectLen int, pattern []byte, patternLen int, fold bool) bool {
	return wildcard.Match(clamp(subject, subjectLen), clamp(pattern, patternLen), fold)
}

func clamp(b []byte, n int) []byte {
	switch {
	case n < 0:
		return b[:0]
	case n > len(b):
		return b
	}
	return b[:n]
}

// MatchCString matches NUL-terminated input. Each argument ends at its first
// zero byte, or at the end of the slice when it has none. Use Match when the
// data may legitimately contain zero bytes.
func MatchCString(subject, pattern []byte, fold bool) bool {
	return wildcard.MatchCString(subject, pattern, fold)
}

// MatchString is the string form of Match.
func MatchString(subject, pattern string, fold bool) bool {
	return wildcard.Match([]byte(subject), []byte(pattern), fold)
}

// MatchBounded runs Match under a step budget, a backtracking depth cap and
// ctx. It returns ErrStepBudget, ErrDepthLimit or ctx.Err() when the match is
// abandoned; otherwise the result is the same as Match.
func MatchBounded(ctx context.Context, subject, pattern []byte, fold bool, lim Limits) (bool, error) {
	return wildcard.MatchBounded(ctx, subject, pattern, fold, lim)
}

// HasWildcard reports whether pattern contains any of `*`, `?`, `[` or `\`.
// A pattern without them only matches itself.
func HasWildcard(pattern []byte) bool {
	return wildcard.HasWildcard(pattern)
}

// EqualFold reports whether a and b are equal when ASCII letters are folded.
func EqualFold(a, b []byte) bool {
	return wildcard.EqualFold(a, b)
}

// Steps reports how many pattern tokens an unbounded match of subject
// against pattern processes. It helps choose Limits.MaxSteps.
func Steps(subject, pattern []byte, fold bool) int {
	return wildcard.Steps(subject, pattern, fold)
}
