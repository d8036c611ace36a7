package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64() < p
}

// Pick returns a random element of keys. keys must not be empty.
func (r *RNG) Pick(keys []int) int {
	return keys[r.Intn(len(keys))]
}

// Model is a map-backed reference implementation of a pool's key assignment:
// freed keys are reused most-recently-freed first, otherwise keys grow from 0.
//
// It does not model chunk compaction.
type Model[T any] struct {
	values   map[int]T
	free     []int
	boundary int
}

// NewModel creates an empty Model.
func NewModel[T any]() *Model[T] {
	return &Model[T]{
		values: make(map[int]T),
	}
}

// NextKey returns the key the next Insert will use.
func (m *Model[T]) NextKey() int {
	if n := len(m.free); n > 0 {
		return m.free[n-1]
	}
	return m.boundary
}

// Insert stores v and returns its key.
func (m *Model[T]) Insert(v T) int {
	key := m.NextKey()
	if n := len(m.free); n > 0 {
		m.free = m.free[:n-1]
	} else {
		m.boundary++
	}
	m.values[key] = v
	return key
}

// Remove removes the value stored under key.
func (m *Model[T]) Remove(key int) (T, bool) {
	v, ok := m.values[key]
	if !ok {
		return v, false
	}
	delete(m.values, key)
	m.free = append(m.free, key)
	return v, true
}

// Get returns the value stored under key.
func (m *Model[T]) Get(key int) (T, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of stored values.
func (m *Model[T]) Len() int {
	return len(m.values)
}

// Keys returns the stored keys in ascending order.
func (m *Model[T]) Keys() []int {
	keys := make([]int, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
