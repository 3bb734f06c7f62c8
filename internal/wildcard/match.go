/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

// Package wildcard contains the byte-oriented glob matching engine.
// It is intended for internal use by the parent keyglob package.
//
// Patterns are plain byte sequences; there is no UTF-8 decoding and case
// folding only ever maps ASCII letters.
package wildcard

import (
	"bytes"
)

const (
	// All bytes with a special meaning in a pattern
	WildcardChars = "*?[\\"

	wildcardStar     = '*'
	wildcardQuestion = '?'
	wildcardBracket  = '['
	wildcardEscape   = '\\'

	classNegate = '^'
	classRange  = '-'
	classClose  = ']'
)

var star = []byte{wildcardStar}

// Lookup table for fast wildcard detection - initialized at compile time
var isWildcardTable = [256]bool{
	'*':  true,
	'?':  true,
	'[':  true,
	'\\': true,
}

// IsWildcardByte checks if a byte has a special meaning in a pattern.
func IsWildcardByte(b byte) bool {
	return isWildcardTable[b]
}

// HasWildcard reports whether pattern contains any byte with a special meaning.
func HasWildcard(pattern []byte) bool {
	for _, b := range pattern {
		if isWildcardTable[b] {
			return true
		}
	}
	return false
}

// Match reports whether subject matches pattern in its entirety.
//
// It tries a few linear fast paths (literal pattern, "*", "prefix*",
// "*suffix", "prefix*suffix") before falling back to the recursive
// backtracking matcher. The fast paths return exactly what the recursive
// matcher would.
func Match(subject, pattern []byte, fold bool) bool {
	if matched, ok := fastPatternMatch(subject, pattern, fold); ok {
		return matched
	}
	matched, _ := matchRecursive(subject, pattern, fold, nil, 0)
	return matched
}

// MatchCString treats subject and pattern as NUL-terminated: each one ends
// at its first zero byte, or at the end of the slice if it has none.
func MatchCString(subject, pattern []byte, fold bool) bool {
	return Match(cstring(subject), cstring(pattern), fold)
}

func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// fastPatternMatch handles patterns that need no backtracking. It returns
// (matched, handled) where handled indicates whether the fast path applied.
func fastPatternMatch(subject, pattern []byte, fold bool) (bool, bool) {
	if len(pattern) == 0 {
		return len(subject) == 0, true
	}

	// Fast path for the most common case: a universal wildcard.
	if len(pattern) == 1 && pattern[0] == wildcardStar {
		return true, true
	}

	// Fast path for patterns without any wildcards.
	if !HasWildcard(pattern) {
		if fold {
			return EqualFold(subject, pattern), true
		}
		return bytes.Equal(subject, pattern), true
	}

	prefix, suffix, found := bytes.Cut(pattern, star)
	if !found || HasWildcard(prefix) || HasWildcard(suffix) {
		return false, false
	}

	// "prefix*", "*suffix" and "prefix*suffix" with a single star.
	if len(subject) < len(prefix)+len(suffix) {
		return false, true
	}
	if fold {
		return hasPrefixFold(subject, prefix) && hasSuffixFold(subject, suffix), true
	}
	return bytes.HasPrefix(subject, prefix) && bytes.HasSuffix(subject, suffix), true
}

// matchRecursive is the core backtracking algorithm. It walks pattern and
// subject in lockstep:
//   - `*` matches any run of bytes, trying every split point of the rest
//     of the subject, longest remainder first;
//   - `?` matches exactly one byte;
//   - `[...]` matches one byte against a character class, and falls back to
//     a literal '[' when the class is never closed;
//   - `\x` matches the literal byte x; a trailing `\` matches itself.
//
// b may be nil, in which case the walk is unbounded and never errors.
func matchRecursive(subject, pattern []byte, fold bool, b *budget, depth int) (bool, error) {
	plen, slen := len(pattern), len(subject)
	pi, si := 0, 0

	for pi < plen {
		if err := b.step(depth); err != nil {
			return false, err
		}

		switch pattern[pi] {
		case wildcardStar:
			// Coalesce consecutive stars into one.
			for pi < plen && pattern[pi] == wildcardStar {
				pi++
			}
			if pi == plen {
				return true, nil
			}

			for ; si <= slen; si++ {
				matched, err := matchRecursive(subject[si:], pattern[pi:], fold, b, depth+1)
				if err != nil || matched {
					return matched, err
				}
			}
			return false, nil

		case wildcardQuestion:
			if si >= slen {
				return false, nil
			}
			pi++
			si++

		case wildcardBracket:
			if si >= slen {
				return false, nil
			}
			matched, next, closed := matchClass(pattern, pi, subject[si], fold)
			if !closed {
				// Unterminated class: the '[' is an ordinary byte.
				if !equalByte(wildcardBracket, subject[si], fold) {
					return false, nil
				}
				pi++
				si++
				break
			}
			if !matched {
				return false, nil
			}
			pi = next
			si++

		case wildcardEscape:
			if pi+1 < plen {
				pi++ // Skip the backslash
			}
			fallthrough

		default:
			if si >= slen || !equalByte(pattern[pi], subject[si], fold) {
				return false, nil
			}
			pi++
			si++
		}

		// Out of subject: only stars may remain.
		if si == slen {
			for pi < plen && pattern[pi] == wildcardStar {
				pi++
			}
			break
		}
	}

	return pi == plen && si == slen, nil
}
