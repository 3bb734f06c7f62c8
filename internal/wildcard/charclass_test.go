/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/
package wildcard

import (
	"testing"
)

func TestCharClassParsing(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		next    int
		closed  bool
	}{
		{"[abc]", 0, 5, true},
		{"[^abc]", 0, 6, true},
		{"[a-z]", 0, 5, true},
		{"[a-zA-Z0-9]", 0, 11, true},
		{"[\\]]", 0, 4, true},
		{"[]", 0, 2, true},
		{"[^]", 0, 3, true},
		{"x[ab]y", 1, 5, true},
		{"[abc", 0, 4, false},
		{"[a\\", 0, 3, false},
		{"[", 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, next, closed := matchClass([]byte(tt.pattern), tt.pos, 'a', false)
			if closed != tt.closed {
				t.Errorf("Expected closed=%v, got %v", tt.closed, closed)
			}
			if closed && next != tt.next {
				t.Errorf("Expected position %d, got %d", tt.next, next)
			}
		})
	}
}

func TestCharClassMatching(t *testing.T) {
	tests := []struct {
		pattern string
		char    byte
		fold    bool
		match   bool
	}{
		{"[abc]", 'a', false, true},
		{"[abc]", 'd', false, false},
		{"[^abc]", 'a', false, false},
		{"[^abc]", 'd', false, true},
		{"[a-z]", 'a', false, true},
		{"[a-z]", 'z', false, true},
		{"[a-z]", 'A', false, false},
		{"[a-z]", 'A', true, true},
		{"[A-Z]", 'q', true, true},
		{"[A-Z]", 'q', false, false},
		{"[0-9]", '5', false, true},
		{"[0-9]", 'a', false, false},
		{"[xy]", 'X', false, false},
		{"[xy]", 'X', true, true},
		{"[\\X]", 'x', true, true},
		{"[\\X]", 'x', false, false},
		{"[\\-]", '-', false, true},
		{"[a\\-z]", 'b', false, false},
		{"[z-a]", 'q', false, true},
		{"[Z-a]", '_', false, true},
		{"[Z-a]", '_', true, false}, // folded bounds invert to an empty range
		{"[^A-Z]", 'm', true, false},
		{"[\xe0-\xff]", '\xf0', false, true},
		{"[\xe0-\xff]", '\xf0', true, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			matched, _, closed := matchClass([]byte(tt.pattern), 0, tt.char, tt.fold)
			if !closed {
				t.Fatalf("class %q reported unterminated", tt.pattern)
			}
			if matched != tt.match {
				t.Errorf("Expected %q (fold=%v) to match=%v, got %v", tt.char, tt.fold, tt.match, matched)
			}
		})
	}
}
