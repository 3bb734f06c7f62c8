package pubsub

import (
	"errors"
	"fmt"
)

const (
	MaxNameLen    = 64
	MaxTopicLen   = 64
	MaxPatternLen = 32
)

var (
	ErrInvalidName    = errors.New("invalid channel name")
	ErrInvalidTopic   = errors.New("invalid topic")
	ErrInvalidPattern = errors.New("invalid pattern")
)

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || ('0' <= c && c <= '9')
}

// isSeparator covers the punctuation allowed in names and topics.
func isSeparator(c byte) bool {
	return c == '_' || c == '-' || c == '.'
}

func isPatternByte(c byte) bool {
	switch c {
	case '*', '?', '[', ']', '\\':
		return true
	}
	return isAlnum(c) || isSeparator(c)
}

// ValidateName checks a channel name: it starts with a letter, '_' or '.',
// continues with letters, digits and separators, and never has two
// separators in a row.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > MaxNameLen {
		return fmt.Errorf("%w: length %d", ErrInvalidName, len(name))
	}
	if c := name[0]; !isAlpha(c) && c != '_' && c != '.' {
		return fmt.Errorf("%w: %q cannot start with %q", ErrInvalidName, name, c)
	}

	prevSep := isSeparator(name[0])
	for i := 1; i < len(name); i++ {
		c := name[i]
		sep := isSeparator(c)
		switch {
		case !sep && !isAlnum(c):
			return fmt.Errorf("%w: %q has %q at %d", ErrInvalidName, name, c, i)
		case sep && prevSep:
			return fmt.Errorf("%w: %q has adjacent separators at %d", ErrInvalidName, name, i)
		}
		prevSep = sep
	}
	return nil
}

// ValidateTopic checks a published topic: letters, digits and separators.
func ValidateTopic(topic string) error {
	if len(topic) == 0 || len(topic) > MaxTopicLen {
		return fmt.Errorf("%w: length %d", ErrInvalidTopic, len(topic))
	}
	for i := 0; i < len(topic); i++ {
		if c := topic[i]; !isAlnum(c) && !isSeparator(c) {
			return fmt.Errorf("%w: %q has %q at %d", ErrInvalidTopic, topic, c, i)
		}
	}
	return nil
}

// ValidatePattern checks a subscription pattern: topic bytes plus the
// wildcard bytes * ? [ ] and \.
func ValidatePattern(pattern string) error {
	if len(pattern) == 0 || len(pattern) > MaxPatternLen {
		return fmt.Errorf("%w: length %d", ErrInvalidPattern, len(pattern))
	}
	for i := 0; i < len(pattern); i++ {
		if c := pattern[i]; !isPatternByte(c) {
			return fmt.Errorf("%w: %q has %q at %d", ErrInvalidPattern, pattern, c, i)
		}
	}
	return nil
}
