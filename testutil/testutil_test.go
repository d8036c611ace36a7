package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := []int{rng.Intn(1000), rng.Intn(1000), rng.Intn(1000)}

	rng.Reset()
	b := []int{rng.Intn(1000), rng.Intn(1000), rng.Intn(1000)}

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestChance(t *testing.T) {
	rng := NewRNG(4711)

	for i := 0; i < 100; i++ {
		assert.False(t, rng.Chance(0))
		assert.True(t, rng.Chance(1))
	}
}

func TestPick(t *testing.T) {
	rng := NewRNG(4711)
	keys := []int{3, 5, 8}

	for i := 0; i < 100; i++ {
		assert.Contains(t, keys, rng.Pick(keys))
	}
}

func TestModel(t *testing.T) {
	m := NewModel[string]()

	assert.Equal(t, 0, m.Insert("a"))
	assert.Equal(t, 1, m.Insert("b"))
	assert.Equal(t, 2, m.Insert("c"))

	v, ok := m.Remove(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = m.Remove(2)
	require.True(t, ok)

	_, ok = m.Remove(2)
	assert.False(t, ok)

	// Most recently freed first.
	assert.Equal(t, 2, m.NextKey())
	assert.Equal(t, 2, m.Insert("d"))
	assert.Equal(t, 0, m.Insert("e"))
	assert.Equal(t, 3, m.Insert("f"))

	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, m.Keys())

	v, ok = m.Get(0)
	require.True(t, ok)
	assert.Equal(t, "e", v)
}
