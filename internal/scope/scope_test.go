package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackNesting(t *testing.T) {
	var s Stack

	_, ok := s.Current()
	assert.False(t, ok, "fresh stack must have no scope")

	s.Enter("installing")
	s.Enter("configuring")

	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "configuring", cur)
	assert.Equal(t, 2, s.Depth())

	s.Leave()
	cur, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, "installing", cur, "Leave must restore the enclosing scope")

	s.Leave()
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Depth())
}

func TestLeaveOnEmptyStackIsNoop(t *testing.T) {
	var s Stack
	s.Leave()
	s.Leave()
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Depth())

	// The stack must still work normally afterwards.
	s.Enter("top")
	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "top", cur)
}

func TestSiblingScopesDoNotLeak(t *testing.T) {
	var s Stack
	s.Enter("outer")

	s.Enter("first-child")
	s.Leave()

	s.Enter("second-child")
	cur, _ := s.Current()
	assert.Equal(t, "second-child", cur)
	s.Leave()

	cur, _ = s.Current()
	assert.Equal(t, "outer", cur)
}
