/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

package wildcard

// lowerTable maps every byte to its ASCII lower-case form. Bytes outside
// 'A'..'Z' map to themselves, so folding never depends on locale.
var lowerTable = func() (t [256]byte) {
	for i := range t {
		b := byte(i)
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		t[i] = b
	}
	return t
}()

// ToLower returns the ASCII lower-case form of b.
func ToLower(b byte) byte {
	return lowerTable[b]
}

// equalByte compares two bytes, folding ASCII case when fold is set.
func equalByte(a, b byte, fold bool) bool {
	if a == b {
		return true
	}
	return fold && lowerTable[a] == lowerTable[b]
}

// EqualFold reports whether a and b are equal under ASCII case folding.
// Unlike bytes.EqualFold it does not decode UTF-8.
func EqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lowerTable[a[i]] != lowerTable[b[i]] {
			return false
		}
	}
	return true
}

func hasPrefixFold(s, prefix []byte) bool {
	return len(s) >= len(prefix) && EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix []byte) bool {
	return len(s) >= len(suffix) && EqualFold(s[len(s)-len(suffix):], suffix)
}
