package wildcard

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMatchBoundedAgreesWithMatch(t *testing.T) {
	cases := []struct {
		s       string
		pattern string
	}{
		{"", ""},
		{"abc", "a?c"},
		{"abcd", "abc"},
		{"mississippi", "m*iss*i"},
		{"aXc", "a[xy]c"},
		{"[ab", "[ab"},
		{"a\\", "a\\"},
	}

	for _, c := range cases {
		for _, fold := range []bool{false, true} {
			want := Match([]byte(c.s), []byte(c.pattern), fold)
			got, err := MatchBounded(context.Background(), []byte(c.s), []byte(c.pattern), fold, Limits{MaxSteps: 10000, MaxDepth: 64})
			if err != nil {
				t.Fatalf("pattern `%s` string `%s`: unexpected error %v", c.pattern, c.s, err)
			}
			if got != want {
				t.Errorf("pattern `%s` string `%s` fold=%v: bounded %v, unbounded %v", c.pattern, c.s, fold, got, want)
			}
		}
	}
}

func TestMatchBoundedStepBudget(t *testing.T) {
	// Stars separated by a byte that never occurs blow up combinatorially.
	subject := []byte(strings.Repeat("a", 30))
	pattern := []byte("*a*a*a*a*a*b")

	_, err := MatchBounded(context.Background(), subject, pattern, false, Limits{MaxSteps: 1000})
	if !errors.Is(err, ErrStepBudget) {
		t.Fatalf("Expected ErrStepBudget, got %v", err)
	}
}

func TestMatchBoundedDepthLimit(t *testing.T) {
	subject := []byte("abcdef")
	pattern := []byte("a*b*c*d*e*f")

	matched, err := MatchBounded(context.Background(), subject, pattern, false, Limits{MaxDepth: 10})
	if err != nil || !matched {
		t.Fatalf("Expected a match within depth 10, got %v, %v", matched, err)
	}

	_, err = MatchBounded(context.Background(), subject, pattern, false, Limits{MaxDepth: 2})
	if !errors.Is(err, ErrDepthLimit) {
		t.Fatalf("Expected ErrDepthLimit, got %v", err)
	}
}

func TestMatchBoundedCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MatchBounded(ctx, []byte("abc"), []byte("a*c"), false, Limits{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestMatchBoundedFastPathIgnoresBudget(t *testing.T) {
	subject := []byte(strings.Repeat("x", 10000) + "suffix")
	matched, err := MatchBounded(context.Background(), subject, []byte("*suffix"), false, Limits{MaxSteps: 1})
	if err != nil || !matched {
		t.Fatalf("Expected fast path match, got %v, %v", matched, err)
	}
}

func TestSteps(t *testing.T) {
	if n := Steps([]byte("abc"), []byte("abc"), false); n != 3 {
		t.Errorf("Expected 3 steps for a literal pattern, got %d", n)
	}
	cheap := Steps([]byte(strings.Repeat("a", 10)), []byte("*a*b"), false)
	costly := Steps([]byte(strings.Repeat("a", 20)), []byte("*a*b"), false)
	if costly <= cheap {
		t.Errorf("Expected step count to grow with subject length, got %d then %d", cheap, costly)
	}
}
