package wildcard

// matchClass tests c against the bracket expression that opens at
// pattern[pi] == '['. It returns whether the class is satisfied, the index
// just past the closing ']', and whether a closing ']' was found at all.
//
// Members are read left to right:
//   - `\x` is the literal byte x;
//   - `lo-hi` is an inclusive range, bounds swapped when lo > hi;
//   - anything else is a literal byte.
//
// A leading '^' negates the class. A '-' that opens the class, or that is
// followed by the closing ']', is a literal '-'.
func matchClass(pattern []byte, pi int, c byte, fold bool) (matched bool, next int, closed bool) {
	plen := len(pattern)

	pi++ // Skip the opening '['
	negated := false
	if pi < plen && pattern[pi] == classNegate {
		negated = true
		pi++
	}

	for pi < plen {
		switch {
		case pattern[pi] == wildcardEscape:
			pi++
			if pi >= plen {
				return false, pi, false
			}
			if equalByte(pattern[pi], c, fold) {
				matched = true
			}
			pi++

		case pattern[pi] == classClose:
			return matched != negated, pi + 1, true

		case pi+2 < plen && pattern[pi+1] == classRange && pattern[pi+2] != classClose:
			if inRange(pattern[pi], pattern[pi+2], c, fold) {
				matched = true
			}
			pi += 3

		default:
			if equalByte(pattern[pi], c, fold) {
				matched = true
			}
			pi++
		}
	}

	// Ran out of pattern before ']'.
	return false, pi, false
}

// inRange orders the bounds first and folds afterwards, so a range such as
// [Z-a] keeps its byte order and folds to an empty interval.
func inRange(lo, hi, c byte, fold bool) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	if fold {
		lo, hi, c = lowerTable[lo], lowerTable[hi], lowerTable[c]
	}
	return c >= lo && c <= hi
}
