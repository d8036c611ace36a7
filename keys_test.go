package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Keys(t *testing.T) {
	p := New[string]()
	assert.True(t, p.Keys().IsEmpty())

	for i := 0; i < ChunkSize+5; i++ {
		p.Insert("v")
	}
	p.Remove(3)
	p.Remove(ChunkSize + 1)

	keys := p.Keys()
	assert.Equal(t, uint64(ChunkSize+3), keys.GetCardinality())
	assert.True(t, keys.Contains(0))
	assert.False(t, keys.Contains(3))
	assert.False(t, keys.Contains(ChunkSize+1))
	assert.True(t, keys.Contains(ChunkSize+4))

	// Snapshot is detached from the pool.
	p.Remove(0)
	assert.True(t, keys.Contains(0))
}

func TestPool_Validate(t *testing.T) {
	build := func() *Pool[int] {
		p := New[int]()
		for i := 0; i < 5; i++ {
			p.Insert(i)
		}
		p.Remove(1)
		p.Remove(3)
		return p
	}

	require.NoError(t, build().Validate())

	tests := []struct {
		name    string
		corrupt func(p *Pool[int])
		reason  string
	}{
		{"free list cycle", func(p *Pool[int]) {
			// 3 -> 1 -> 3
			p.chunks[0].entries.At(1).next = 3
		}, "free list cycle"},
		{"free list reaches occupied", func(p *Pool[int]) {
			p.chunks[0].entries.At(1).next = 2
		}, "free list reaches an occupied slot"},
		{"negative link", func(p *Pool[int]) {
			p.chunks[0].entries.At(1).next = -7
		}, "negative free-list link"},
		{"link past boundary", func(p *Pool[int]) {
			p.next = 4 * ChunkSize
		}, "free-list link past the growth boundary"},
		{"unreachable vacant slot", func(p *Pool[int]) {
			p.next = 1
		}, "vacant slot not reachable from the free list"},
		{"pool length", func(p *Pool[int]) {
			p.len++
		}, "pool length mismatch"},
		{"chunk count", func(p *Pool[int]) {
			p.chunks[0].len--
		}, "chunk occupied count mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := build()
			tt.corrupt(p)

			err := p.Validate()
			require.ErrorIs(t, err, ErrCorrupted)

			var ce *CorruptionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.reason, ce.Reason)
		})
	}
}

func TestPool_Validate_PartialChunk(t *testing.T) {
	p := New[int]()
	p.Insert(1)
	p.chunks = append(p.chunks, newChunk[int]())
	p.chunks[1].entries.Push(entry[int]{value: 2, occupied: true})
	p.chunks[1].len = 1
	p.len = 2
	p.next = ChunkSize + 1

	err := p.Validate()
	var ce *CorruptionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "chunk before the last is partially used", ce.Reason)
	assert.Equal(t, 1, ce.Key)
}
