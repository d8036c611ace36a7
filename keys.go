package slab

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/slab/internal/conv"
)

// Keys returns a snapshot of every occupied key.
//
// The bitmap is independent of the pool and is not updated by later inserts
// or removals. Like Iter, it costs O(Capacity).
func (p *Pool[T]) Keys() *roaring64.Bitmap {
	bm := roaring64.New()

	buf := make([]uint64, 0, ChunkSize)
	for ci, c := range p.chunks {
		buf = buf[:0]
		used := c.entries.Used()
		for si := range used {
			if used[si].occupied {
				buf = append(buf, uint64(ci*ChunkSize+si))
			}
		}
		bm.AddMany(buf)
	}

	return bm
}

// Validate checks the pool's internal invariants and returns a
// *CorruptionError describing the first violation, or nil.
//
// It verifies that the occupied counters match the slots, that only the last
// chunk is partially used, and that the free list visits every vacant slot
// exactly once before reaching the growth boundary.
func (p *Pool[T]) Validate() error {
	total, vacant := 0, 0

	for ci, c := range p.chunks {
		base := ci * ChunkSize

		if c.entries.Len() == 0 {
			return &CorruptionError{Reason: "chunk has no used slots", Key: base}
		}
		if ci < len(p.chunks)-1 && !c.entries.Full() {
			return &CorruptionError{Reason: "chunk before the last is partially used", Key: base + c.entries.Len()}
		}

		occupied := 0
		used := c.entries.Used()
		for si := range used {
			if used[si].occupied {
				occupied++
			} else {
				vacant++
			}
		}

		if occupied != c.len {
			return &CorruptionError{Reason: "chunk occupied count mismatch", Key: base}
		}
		total += occupied
	}

	if total != p.len {
		return &CorruptionError{Reason: "pool length mismatch", Key: -1}
	}

	boundary := p.growthBoundary()
	visited := roaring64.New()

	from := Key(-1)
	for key := p.next; key != boundary; {
		k, err := conv.IntToUint64(key)
		if err != nil {
			return &CorruptionError{Reason: "negative free-list link", Key: from}
		}
		if !visited.CheckedAdd(k) {
			return &CorruptionError{Reason: "free list cycle", Key: key}
		}

		_, e, ok := p.slot(key)
		if !ok {
			return &CorruptionError{Reason: "free-list link past the growth boundary", Key: key}
		}
		if e.occupied {
			return &CorruptionError{Reason: "free list reaches an occupied slot", Key: key}
		}

		from, key = key, e.next
	}

	if visited.GetCardinality() != uint64(vacant) {
		return &CorruptionError{Reason: "vacant slot not reachable from the free list", Key: -1}
	}

	return nil
}
