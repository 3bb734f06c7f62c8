package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadSize is returned for size values that are not digits followed by an
// optional b, k, m or g suffix.
var ErrBadSize = errors.New("invalid size")

// maxSizeDigits bounds the digit run ParseSize accepts.
const maxSizeDigits = 127

var sizeMultipliers = map[string]int64{
	"":  1,
	"b": 1,
	"k": 1000,
	"m": 1000 * 1000,
	"g": 1000 * 1000 * 1000,
}

// ParseSize converts strings like "512", "64k" or "2G" into a byte count.
// Suffixes are case-insensitive decimal multipliers. An empty digit run
// counts as zero, so "k" alone is 0.
func ParseSize(s string) (int64, error) {
	digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
	if digits > maxSizeDigits {
		return math.MaxInt64, fmt.Errorf("%w %q: too many digits", ErrBadSize, s)
	}

	mul, ok := sizeMultipliers[strings.ToLower(s[digits:])]
	if !ok {
		return 0, fmt.Errorf("%w %q: unknown suffix %q", ErrBadSize, s, s[digits:])
	}
	if digits == 0 {
		return 0, nil
	}

	n, err := strconv.ParseInt(s[:digits], 10, 64)
	if err != nil {
		return math.MaxInt64, fmt.Errorf("%w %q: %v", ErrBadSize, s, err)
	}
	if n > math.MaxInt64/mul {
		return math.MaxInt64, fmt.Errorf("%w %q: overflows", ErrBadSize, s)
	}
	return n * mul, nil
}

// Size is a byte count that unmarshals from either a YAML integer or a
// suffixed string such as "64k".
type Size int64

func (s *Size) UnmarshalYAML(unmarshal func(any) error) error {
	var n int64
	if err := unmarshal(&n); err == nil {
		*s = Size(n)
		return nil
	}

	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	v, err := ParseSize(strings.TrimSpace(str))
	if err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

func (s Size) String() string {
	switch n := int64(s); {
	case n != 0 && n%1e9 == 0:
		return strconv.FormatInt(n/1e9, 10) + "g"
	case n != 0 && n%1e6 == 0:
		return strconv.FormatInt(n/1e6, 10) + "m"
	case n != 0 && n%1e3 == 0:
		return strconv.FormatInt(n/1e3, 10) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}
