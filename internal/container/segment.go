// Package container implements container data structures.
package container

const (
	// segmentBits determines the size of each segment.
	// 10 bits = 1024 items per segment.
	segmentBits = 10

	// SegmentSize is the fixed capacity of a Segment.
	SegmentSize = 1 << segmentBits
)

// Segment is a fixed-capacity, append-only array of items.
//
// The backing array is embedded by value, so a Segment that lives on the heap
// never moves its items: the address returned by Push or At stays valid for the
// lifetime of the Segment. It is not safe for concurrent use.
type Segment[T any] struct {
	items [SegmentSize]T
	n     int
}

// NewSegment allocates an empty Segment on the heap.
func NewSegment[T any]() *Segment[T] {
	return &Segment[T]{}
}

// Len returns the number of used items.
func (s *Segment[T]) Len() int {
	return s.n
}

// Cap returns the fixed capacity of the segment.
func (s *Segment[T]) Cap() int {
	return SegmentSize
}

// Full reports whether every item has been used.
func (s *Segment[T]) Full() bool {
	return s.n == SegmentSize
}

// Push appends v and returns its stable address.
// It panics if the segment is full.
func (s *Segment[T]) Push(v T) *T {
	if s.n == SegmentSize {
		panic("container: segment is full")
	}
	p := &s.items[s.n]
	*p = v
	s.n++
	return p
}

// At returns the address of the item at index i.
// It panics if i is outside the used range.
func (s *Segment[T]) At(i int) *T {
	if i < 0 || i >= s.n {
		panic("container: segment index out of range")
	}
	return &s.items[i]
}

// Get returns the address of the item at index i, or false if i is
// outside the used range.
func (s *Segment[T]) Get(i int) (*T, bool) {
	if i < 0 || i >= s.n {
		return nil, false
	}
	return &s.items[i], true
}

// Used returns the used items as a slice aliasing the segment's storage.
// The slice is capped at Len, so appending to it never writes into unused items.
func (s *Segment[T]) Used() []T {
	return s.items[:s.n:s.n]
}
