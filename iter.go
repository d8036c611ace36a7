package slab

import (
	"iter"
)

// Iterator walks the values of a Pool in ascending key order.
//
// It visits every allocated slot, so a walk costs O(Capacity) even when few
// values are stored. Values removed ahead of the iterator are skipped; values
// inserted into chunks allocated after the iterator was created are not
// visited. FreeUnused does not affect a running iterator, which keeps walking
// the chunks and keys it started with.
type Iterator[T any] struct {
	chunks  []*chunk[T]
	entries []entry[T]
	ci      int // next chunk to load
	curr    Key // key of entries[0]
}

// Iter returns an iterator over the stored values. Each call starts a new walk.
func (p *Pool[T]) Iter() *Iterator[T] {
	return &Iterator[T]{
		chunks: p.chunks,
	}
}

// IterMut returns an iterator whose values may be written through.
// The same caveats as GetMut apply to every visited value.
func (p *Pool[T]) IterMut() *Iterator[T] {
	return p.Iter()
}

// Next returns the next stored key and the address of its value.
// ok is false once the walk is finished.
func (it *Iterator[T]) Next() (key Key, value *T, ok bool) {
	for {
		for len(it.entries) > 0 {
			e := &it.entries[0]
			it.entries = it.entries[1:]
			k := it.curr
			it.curr++

			if e.occupied {
				return k, &e.value, true
			}
		}

		if it.ci >= len(it.chunks) {
			return 0, nil, false
		}

		it.entries = it.chunks[it.ci].entries.Used()
		it.curr = it.ci * ChunkSize
		it.ci++
	}
}

// SizeHint returns bounds on the number of values left to visit.
func (it *Iterator[T]) SizeHint() (lower, upper int) {
	return 0, len(it.entries) + (len(it.chunks)-it.ci)*ChunkSize
}

// All returns a range-over-func sequence of keys and value addresses.
//
//	for key, v := range pool.All() {
//	    fmt.Println(key, *v)
//	}
func (p *Pool[T]) All() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		it := p.Iter()
		for {
			key, v, ok := it.Next()
			if !ok || !yield(key, v) {
				return
			}
		}
	}
}

// AllMut is like All but yields values that may be written through.
// The same caveats as GetMut apply.
func (p *Pool[T]) AllMut() iter.Seq2[Key, *T] {
	return p.All()
}
