package wildcard

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// TestMatch validates case-sensitive matching of '*', '?', '[...]' and '\'.
func TestMatch(t *testing.T) {
	cases := []struct {
		s       string
		pattern string
		result  bool
	}{
		// --- Empty String cases ---
		{"", "", true},
		{"", "*", true},
		{"", "**", true},
		{"", "?", false},
		{"", "??", false},
		{"", "?*", false},
		{"", "*?", false},
		{"", "[a]", false},
		{"", "\\*", false},
		{"", "a", false},

		// --- Single Character cases ---
		{"a", "", false},
		{"x", "", false},
		{"a", "a", true},
		{"a", "*", true},
		{"a", "**", true},
		{"a", "?", true},
		{"a", "??", false},
		{"a", "?*", true},
		{"a", "*?", true},

		// --- Basic Functionality Tests ---
		{"hello world", "hello world", true},
		{"hello", "world", false},
		{"HELLO", "hello", false},
		{"abcd", "abc", false}, // pattern exhausted before subject
		{"abc", "abcd", false},
		{"file.txt", "file.txt", true},
		{"fileXtxt", "file.txt", false}, // '.' is an ordinary byte

		// --- Star Wildcard Tests ---
		{"file.txt", "file.*", true},
		{"file.txt", "*.txt", true},
		{"file.txt", "*.*", true},
		{"file.txt", "f*.t", false},
		{"file.txt", "f*.t*", true},
		{"longstring", "long**string", true},
		{"longstring", "long***string", true},
		{"orders.eu.created", "orders.*.created", true},
		{"orders.eu.deleted", "orders.*.created", false},

		// --- Question Mark Wildcard Tests ---
		{"abc", "a?c", true},
		{"abc", "a?d", false},
		{"ac", "a?c", false},
		{"caats", "c??ts", true},
		{"cuts", "c??ts", false},
		{"abc", "???", true},
		{"abc", "????", false},

		// --- Greediness and backtracking cases ---
		{"ababa", "a*a", true},
		{"abab", "a*b", true},
		{"aaab", "*ab", true},
		{"mississippi", "m*i*i", true},
		{"mississippi", "m*iss*i", true},
		{"mississippi", "m*iss*x", false},
		{"axbyc", "a*b*c", true},
		{"axbyc", "a*b?c", true},
		{"axbyc", "a?b*c", true},
		{"abcbc", "*bc", true},
		{"abcbcx", "*bc", false},

		// --- Character class tests ---
		{"a", "[abc]", true},
		{"c", "[abc]", true},
		{"d", "[abc]", false},
		{"b", "[^ab]", false},
		{"c", "[^ab]", true},
		{"!", "[!ab]", true}, // only '^' negates
		{"a", "[!ab]", true},
		{"c", "[!ab]", false},
		{"m", "[a-z]", true},
		{"M", "[a-z]", false},
		{"5", "[0-9a-f]", true},
		{"g", "[0-9a-f]", false},
		{"5", "[0-359]", true},
		{"4", "[0-359]", false},
		{"4", "[^0-359]", true},
		{"m", "[z-a]", true}, // reversed bounds are swapped
		{"5", "[9-0]", true},
		{"aXc", "a[xy]c", false},
		{"ayc", "a[xy]c", true},
		{"abc", "[a-z]*", true},
		{"123", "[a-z]*", false},
		{"a1b", "[a-z]*[0-9]*[a-z]", true},
		{"ab1", "[a-z]*[0-9]*[a-z]", false},

		// '-' at either end is literal
		{"-", "[-a]", true},
		{"a", "[-a]", true},
		{"b", "[-a]", false},
		{"-", "[a-]", true},
		{"a", "[a-]", true},
		{"b", "[a-]", false},

		// Escapes inside classes
		{"-", "[a\\-z]", true},
		{"m", "[a\\-z]", false},
		{"]", "[\\]]", true},
		{"x", "[\\]]", false},
		{"^", "[\\^]", true},

		// Empty classes and closing brackets
		{"]", "[]]", false}, // "[]" is an empty class followed by ']'
		{"a]", "[]]", false},
		{"x", "[^]", true},
		{"x]", "[^]]", true},
		{"a]", "[a]]", true},
		{"a", "[a]]", false},

		// Unterminated classes fall back to a literal '['
		{"[", "[", true},
		{"[ab", "[ab", true},
		{"a", "[ab", false},
		{"[x", "[?", true},
		{"[abc", "[a*", true},
		{"[", "[\\", false},
		{"x[ab", "x[ab", true},

		// --- Escape sequence tests ---
		{"a*", "a\\*", true},
		{"ab", "a\\*", false},
		{"a?", "a\\?", true},
		{"ab", "a\\?", false},
		{"a[", "a\\[", true},
		{"a\\", "a\\\\", true},
		{"*start", "\\*start", true},
		{"a\\", "a\\", true}, // trailing backslash is literal
		{"ab", "a\\", false},
		{"*?[", "\\*\\?\\[", true},
		{"test*file?.txt[0]", "test\\*file\\?.txt\\[0]", true},

		// --- Embedded zero bytes ---
		{"a\x00b", "a?b", true},
		{"a\x00b", "a\x00b", true},
		{"a\x00b", "a*", true},
		{"a\x00b", "a", false},
		{"\x00", "[\x00]", true},
	}

	for i, c := range cases {
		result := Match([]byte(c.s), []byte(c.pattern), false)
		if c.result != result {
			t.Errorf("Test %d: Expected `%v`, found `%v`; With Pattern: `%s` and String: `%s`", i+1, c.result, result, c.pattern, c.s)
		}
	}
}

// TestMatchRecursiveAgreesWithFastPaths runs every fast-path shape through the
// backtracking matcher directly.
func TestMatchRecursiveAgreesWithFastPaths(t *testing.T) {
	subjects := []string{"", "a", "ab", "abc", "abcabc", "xabc", "abcx", "ABC", "aBc"}
	patterns := []string{"", "*", "abc", "ABC", "abc*", "*abc", "ab*bc", "a*c", "*", "x*", "*x"}

	for _, s := range subjects {
		for _, p := range patterns {
			for _, fold := range []bool{false, true} {
				fast, handled := fastPatternMatch([]byte(s), []byte(p), fold)
				if !handled {
					continue
				}
				slow, err := matchRecursive([]byte(s), []byte(p), fold, nil, 0)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if fast != slow {
					t.Errorf("fold=%v pattern `%s` string `%s`: fast path %v, recursive %v", fold, p, s, fast, slow)
				}
			}
		}
	}
}

func TestMatchStarCollapse(t *testing.T) {
	subjects := []string{"", "a", "abc", "aXbXc", "mississippi", "[x]"}
	suffixes := []string{"", "a", "c", "?", "[a-c]", "b*c", "\\[x]", "i*i"}

	for _, s := range subjects {
		for _, p := range suffixes {
			one := Match([]byte(s), []byte("*"+p), false)
			two := Match([]byte(s), []byte("**"+p), false)
			if one != two {
				t.Errorf("`*%s` and `**%s` disagree on `%s`: %v vs %v", p, p, s, one, two)
			}
		}
	}
}

// TestMatchStarCollapseGenerated checks `**p` against `*p` on generated
// patterns and subjects.
func TestMatchStarCollapseGenerated(t *testing.T) {
	const (
		patternBytes = "ab*?[]\\-^A"
		subjectBytes = "abAB-^["
	)
	rng := rand.New(rand.NewPCG(7, 11))
	gen := func(alphabet string, maxLen int) string {
		b := make([]byte, rng.IntN(maxLen+1))
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(b)
	}

	for i := range 20000 {
		p, s := gen(patternBytes, 8), gen(subjectBytes, 10)
		fold := i%2 == 1
		one := Match([]byte(s), []byte("*"+p), fold)
		two := Match([]byte(s), []byte("**"+p), fold)
		if one != two {
			t.Fatalf("Test %d: fold=%v `*%s` and `**%s` disagree on `%s`: %v vs %v", i, fold, p, p, s, one, two)
		}
	}
}

func TestMatchUniversalWildcard(t *testing.T) {
	for _, s := range []string{"", "a", "*", "[", "\\", "\x00\xff", strings.Repeat("z", 1000)} {
		if !Match([]byte(s), []byte("*"), false) {
			t.Errorf("`*` did not match `%q`", s)
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	s, p := []byte("topic.a.b.c"), []byte("topic.*.[a-c].*")
	first := Match(s, p, false)
	for range 100 {
		if Match(s, p, false) != first {
			t.Fatal("repeated Match returned a different result")
		}
	}
}

func TestMatchCString(t *testing.T) {
	cases := []struct {
		s       string
		pattern string
		result  bool
	}{
		{"abc\x00", "a*\x00", true},
		{"abc\x00garbage", "abc\x00", true},
		{"abc\x00", "abc\x00d", true}, // everything after NUL is ignored
		{"abc", "abc", true},          // no terminator: whole slice
		{"\x00abc", "", true},
		{"\x00abc", "*\x00abc", true},
		{"abc\x00", "abd\x00", false},
	}

	for i, c := range cases {
		result := MatchCString([]byte(c.s), []byte(c.pattern), false)
		if c.result != result {
			t.Errorf("Test %d: Expected `%v`, found `%v`; With Pattern: `%q` and String: `%q`", i+1, c.result, result, c.pattern, c.s)
		}
	}
}

func TestIsWildcardByte(t *testing.T) {
	for i := range 256 {
		b := byte(i)
		want := strings.IndexByte(WildcardChars, b) >= 0
		if IsWildcardByte(b) != want {
			t.Errorf("IsWildcardByte(%q) = %v, want %v", b, !want, want)
		}
	}
	if HasWildcard([]byte("plain.text")) {
		t.Error("HasWildcard reported a wildcard in a literal pattern")
	}
	if !HasWildcard([]byte("a\\b")) {
		t.Error("HasWildcard missed an escape")
	}
}

func BenchmarkMatchBacktracking(b *testing.B) {
	subject := []byte(strings.Repeat("a", 40))
	pattern := []byte("*a*a*a*b")
	for b.Loop() {
		Match(subject, pattern, false)
	}
}
