package slab

import (
	"unsafe"

	"github.com/hupe1980/slab/internal/container"
)

// ChunkSize is the number of slots in each chunk. Capacity always grows and
// shrinks in multiples of ChunkSize.
const ChunkSize = container.SegmentSize

// entry is a slot: occupied holds value, vacant holds the next free key.
type entry[T any] struct {
	value    T
	next     Key
	occupied bool
}

// chunk is allocated once and never moved; it owns its slots outright.
type chunk[T any] struct {
	entries container.Segment[entry[T]]
	len     int // occupied entries
}

func newChunk[T any]() *chunk[T] {
	return new(chunk[T])
}

// chunkBytes is the footprint of one chunk, used for budget accounting.
func chunkBytes[T any]() uintptr {
	return unsafe.Sizeof(chunk[T]{})
}

// split decomposes a global key into chunk and slot indices.
func split(key Key) (int, int) {
	return key / ChunkSize, key % ChunkSize
}
