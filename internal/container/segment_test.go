package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_Push(t *testing.T) {
	t.Run("basic push", func(t *testing.T) {
		s := NewSegment[int]()
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, SegmentSize, s.Cap())

		p := s.Push(42)
		require.NotNil(t, p)
		assert.Equal(t, 42, *p)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("addresses are stable", func(t *testing.T) {
		s := NewSegment[int]()
		first := s.Push(1)

		for i := 1; i < SegmentSize; i++ {
			s.Push(i)
		}

		assert.True(t, s.Full())
		assert.Same(t, first, s.At(0))
		assert.Equal(t, 1, *first)
	})

	t.Run("full segment panics", func(t *testing.T) {
		s := NewSegment[int]()
		for i := 0; i < SegmentSize; i++ {
			s.Push(i)
		}

		assert.Panics(t, func() { s.Push(0) })
		assert.Equal(t, SegmentSize, s.Len())
	})
}

func TestSegment_Get(t *testing.T) {
	s := NewSegment[string]()
	s.Push("a")
	s.Push("b")

	p, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", *p)

	_, ok = s.Get(2)
	assert.False(t, ok)

	_, ok = s.Get(-1)
	assert.False(t, ok)

	assert.Panics(t, func() { s.At(2) })
}

func TestSegment_Used(t *testing.T) {
	s := NewSegment[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	used := s.Used()
	assert.Equal(t, []int{1, 2, 3}, used)
	assert.Equal(t, 3, cap(used))

	used[1] = 20
	assert.Equal(t, 20, *s.At(1))
}
