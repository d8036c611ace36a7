package slab

import (
	"context"
	"fmt"

	"github.com/hupe1980/slab/internal/conv"
)

// Key identifies a value stored in a Pool. Keys are handed out by the insert
// methods and should be treated as opaque.
type Key = int

// Pool is a slab allocator whose values never move while they are stored.
//
// A Pool is not safe for concurrent use. Readers (Get, Contains, Len,
// Capacity, Iter, Keys) may run concurrently with each other; everything else
// requires exclusive access.
type Pool[T any] struct {
	chunks     []*chunk[T]
	len        int
	next       Key // free-list head, or the growth boundary when no slot is vacant
	chunkBytes int64
	opts       options
}

// New creates an empty Pool. No chunk is allocated until the first insert.
func New[T any](optFns ...Option) *Pool[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	bytes, _ := conv.UintptrToInt64(chunkBytes[T]()) // Safe: a chunk is a heap object

	return &Pool[T]{
		chunkBytes: bytes,
		opts:       opts,
	}
}

// Len returns the number of stored values.
func (p *Pool[T]) Len() int {
	return p.len
}

// IsEmpty reports whether no values are stored.
func (p *Pool[T]) IsEmpty() bool {
	return p.len == 0
}

// Capacity returns the number of slots allocated. It is always a multiple
// of ChunkSize.
func (p *Pool[T]) Capacity() int {
	return len(p.chunks) * ChunkSize
}

// Contains reports whether a value is associated with key.
func (p *Pool[T]) Contains(key Key) bool {
	_, ok := p.Get(key)
	return ok
}

// Get returns the address of the value associated with key.
//
// The pointer stays valid until the value is removed. It is meant for
// reading; use GetMut to write through it.
func (p *Pool[T]) Get(key Key) (*T, bool) {
	_, e, ok := p.lookup(key)
	if !ok {
		return nil, false
	}
	return &e.value, true
}

// GetMut returns the address of the value associated with key for writing.
//
// Writing through the pointer changes the value in place. The caller must not
// replace the value in a way that invalidates pointers other code holds into
// it (for example overwriting a node of an intrusive list that is still
// linked).
func (p *Pool[T]) GetMut(key Key) (*T, bool) {
	return p.Get(key)
}

// At returns the address of the value associated with key.
// It panics with a *KeyError if key is not associated with a value.
func (p *Pool[T]) At(key Key) *T {
	v, ok := p.Get(key)
	if !ok {
		p.opts.logger.LogInvalidKey(context.Background(), "at", key)
		panic(&KeyError{Op: "at", Key: key})
	}
	return v
}

// Insert stores value and returns its key.
//
// If a memory budget is configured and growing the pool is refused, Insert
// panics with ErrMemoryLimitExceeded; use TryInsert to handle that case.
func (p *Pool[T]) Insert(value T) Key {
	key, _ := p.InsertRef(value)
	return key
}

// InsertRef stores value and returns its key together with the address of
// the stored value.
//
// It panics under the same conditions as Insert.
func (p *Pool[T]) InsertRef(value T) (Key, *T) {
	key, ref, err := p.insert(context.Background(), value, false)
	if err != nil {
		panic(err)
	}
	return key, ref
}

// TryInsert is like InsertRef but returns ErrMemoryLimitExceeded instead of
// panicking when the memory budget refuses a new chunk.
// The pool is unchanged on error.
func (p *Pool[T]) TryInsert(value T) (Key, *T, error) {
	return p.insert(context.Background(), value, false)
}

// InsertContext is like TryInsert but waits for memory to be released to a
// shared budget, until ctx is done.
func (p *Pool[T]) InsertContext(ctx context.Context, value T) (Key, *T, error) {
	return p.insert(ctx, value, true)
}

func (p *Pool[T]) insert(ctx context.Context, value T, wait bool) (Key, *T, error) {
	key := p.next

	if ci, _ := split(key); ci == len(p.chunks) {
		if err := p.grow(ctx, wait); err != nil {
			p.opts.metricsCollector.RecordInsert(err)
			return 0, nil, err
		}
	}

	ref := p.insertAt(key, value)
	p.opts.metricsCollector.RecordInsert(nil)
	return key, ref, nil
}

// grow appends one chunk, reserving its memory from the budget first.
func (p *Pool[T]) grow(ctx context.Context, wait bool) error {
	ci := len(p.chunks)

	if rc := p.opts.controller; rc != nil {
		var err error
		if wait {
			err = rc.AcquireMemory(ctx, p.chunkBytes)
		} else {
			err = rc.TryAcquireMemory(p.chunkBytes)
		}
		if err != nil {
			p.opts.logger.LogGrowthRefused(ctx, ci, p.chunkBytes, err)
			return err
		}
	}

	p.chunks = append(p.chunks, newChunk[T]())

	p.opts.logger.LogChunkAllocated(ctx, ci, p.Capacity())
	p.opts.metricsCollector.RecordChunkAllocated()
	return nil
}

// insertAt stores value at key, which must be the current free-list head.
func (p *Pool[T]) insertAt(key Key, value T) *T {
	ci, si := split(key)
	c := p.chunks[ci]

	var e *entry[T]
	if si == c.entries.Len() {
		// First unused slot: append and move the growth boundary.
		e = c.entries.Push(entry[T]{value: value, occupied: true})
		p.next = key + 1
	} else {
		e = c.entries.At(si)
		if e.occupied {
			panic(&CorruptionError{Reason: "free list points at an occupied slot", Key: key})
		}
		p.next = e.next
		e.value = value
		e.next = 0
		e.occupied = true
	}

	c.len++
	p.len++
	return &e.value
}

// Remove removes and returns the value associated with key. The key may be
// handed out again by a later insert.
//
// It panics with a *KeyError if key is not associated with a value; the pool
// is left unchanged in that case.
func (p *Pool[T]) Remove(key Key) T {
	v, err := p.remove("remove", key)
	if err != nil {
		panic(err)
	}
	return v
}

// TryRemove is like Remove but returns a *KeyError instead of panicking.
func (p *Pool[T]) TryRemove(key Key) (T, error) {
	return p.remove("remove", key)
}

func (p *Pool[T]) remove(op string, key Key) (T, error) {
	var zero T

	c, e, ok := p.lookup(key)
	if !ok {
		err := &KeyError{Op: op, Key: key}
		p.opts.logger.LogInvalidKey(context.Background(), op, key)
		p.opts.metricsCollector.RecordRemove(err)
		return zero, err
	}

	v := e.value
	e.value = zero
	e.next = p.next
	e.occupied = false

	c.len--
	p.len--
	p.next = key

	p.opts.metricsCollector.RecordRemove(nil)
	return v, nil
}

// Retain removes every value for which f returns false, visiting values in
// ascending key order. Kept values keep their keys.
//
// f receives a writable pointer with the same caveats as GetMut. It must not
// insert into or remove from the pool.
func (p *Pool[T]) Retain(f func(key Key, value *T) bool) {
	for ci := 0; ci < len(p.chunks); ci++ {
		c := p.chunks[ci]
		for si := 0; si < c.entries.Len(); si++ {
			e := c.entries.At(si)
			if !e.occupied {
				continue
			}

			key := ci*ChunkSize + si
			if !f(key, &e.value) {
				_, _ = p.remove("retain", key)
			}
		}
	}
}

// FreeUnused releases every chunk that holds no value and returns how many
// were released.
//
// WARNING: this is a compaction. Chunks after a released chunk move down, so
// keys that addressed them are renumbered and must not be used afterwards.
// Only call it when no such keys are live, or when renumbering is acceptable.
// Pointers to stored values stay valid; only their keys change.
func (p *Pool[T]) FreeUnused() int {
	kept := make([]*chunk[T], 0, len(p.chunks))
	for _, c := range p.chunks {
		if c.len > 0 {
			kept = append(kept, c)
		}
	}

	freed := len(p.chunks) - len(kept)
	if freed > 0 {
		p.chunks = kept
		p.rebuildFreeList()
		p.opts.controller.ReleaseMemory(int64(freed) * p.chunkBytes)
	}

	p.opts.logger.LogChunksFreed(context.Background(), freed, len(p.chunks))
	p.opts.metricsCollector.RecordChunksFreed(freed)
	return freed
}

// rebuildFreeList threads every vacant slot in ascending key order, ending at
// the growth boundary.
func (p *Pool[T]) rebuildFreeList() {
	p.next = p.growthBoundary()

	for ci := len(p.chunks) - 1; ci >= 0; ci-- {
		used := p.chunks[ci].entries.Used()
		for si := len(used) - 1; si >= 0; si-- {
			if e := &used[si]; !e.occupied {
				e.next = p.next
				p.next = ci*ChunkSize + si
			}
		}
	}
}

// growthBoundary is the key one past the last used slot of the last chunk.
// Only the last chunk can be partially used.
func (p *Pool[T]) growthBoundary() Key {
	n := len(p.chunks)
	if n == 0 {
		return 0
	}
	return (n-1)*ChunkSize + p.chunks[n-1].entries.Len()
}

// slot resolves key to its entry regardless of its state.
func (p *Pool[T]) slot(key Key) (*chunk[T], *entry[T], bool) {
	if key < 0 {
		return nil, nil, false
	}

	ci, si := split(key)
	if ci >= len(p.chunks) {
		return nil, nil, false
	}

	c := p.chunks[ci]
	e, ok := c.entries.Get(si)
	if !ok {
		return nil, nil, false
	}
	return c, e, true
}

// lookup resolves key to an occupied entry.
func (p *Pool[T]) lookup(key Key) (*chunk[T], *entry[T], bool) {
	c, e, ok := p.slot(key)
	if !ok || !e.occupied {
		return nil, nil, false
	}
	return c, e, true
}

// Stats is a snapshot of pool occupancy.
type Stats struct {
	Len           int   // stored values
	Capacity      int   // allocated slots
	Chunks        int   // allocated chunks
	Vacant        int   // used slots currently on the free list
	ReservedBytes int64 // chunk memory held by the pool
}

// Stats returns the current pool statistics.
func (p *Pool[T]) Stats() Stats {
	used := 0
	for _, c := range p.chunks {
		used += c.entries.Len()
	}

	return Stats{
		Len:           p.len,
		Capacity:      p.Capacity(),
		Chunks:        len(p.chunks),
		Vacant:        used - p.len,
		ReservedBytes: int64(len(p.chunks)) * p.chunkBytes,
	}
}

func (p *Pool[T]) String() string {
	stats := p.Stats()
	return fmt.Sprintf(
		"Pool{len: %d, capacity: %d, chunks: %d, vacant: %d, reserved: %.2f KB}",
		stats.Len,
		stats.Capacity,
		stats.Chunks,
		stats.Vacant,
		float64(stats.ReservedBytes)/1024,
	)
}
