package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTRUE(t *testing.T) {
	assert.True(t, TRUE().Match(nil))
	assert.True(t, TRUE().MatchString(""))
}

func TestFALSE(t *testing.T) {
	assert.False(t, FALSE().Match(nil))
	assert.False(t, FALSE().MatchString(""))
}

func TestAnd(t *testing.T) {
	a, b, c := NewGlob("a*", false), NewGlob("*b", false), NewGlob("*c*", false)

	assert.Equal(t, TRUE(), And())
	assert.Equal(t, FALSE(), And(a, FALSE(), b))
	assert.Equal(t, a, And(TRUE(), a))
	assert.Equal(t, a, And(a, TRUE()))
	assert.Equal(t, allOf{a, b}, And(a, b))
	assert.Equal(t, allOf{a, b, c}, And(And(a, b), c))

	assert.True(t, And(a, b, c).MatchString("acb"))
	assert.False(t, And(a, b, c).MatchString("ab"))
	assert.False(t, And(a, b, c).Match([]byte("cab")))
}

func TestOr(t *testing.T) {
	a, b, c := NewGlob("a*", false), NewGlob("*b", false), NewGlob("*c*", false)

	assert.Equal(t, FALSE(), Or())
	assert.Equal(t, TRUE(), Or(a, TRUE(), b))
	assert.Equal(t, a, Or(FALSE(), a))
	assert.Equal(t, a, Or(a, FALSE()))
	assert.Equal(t, anyOf{a, b}, Or(a, b))
	assert.Equal(t, anyOf{a, b, c}, Or(a, Or(b, c)))

	assert.True(t, Or(a, b).Match([]byte("xb")))
	assert.False(t, Or(a, b).Match([]byte("xc")))
	assert.True(t, Or(a, b, c).MatchString("xcx"))
}

func TestNot(t *testing.T) {
	a := NewGlob("a*", false)

	assert.Equal(t, FALSE(), Not(TRUE()))
	assert.Equal(t, TRUE(), Not(FALSE()))
	assert.Equal(t, notMatcher{inner: a}, Not(a))
	assert.Equal(t, a, Not(Not(a)))
	assert.False(t, Not(a).MatchString("abc"))
	assert.True(t, Not(a).Match([]byte("xbc")))
}
