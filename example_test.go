package slab_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/slab"
	"github.com/hupe1980/slab/resource"
)

// Example demonstrates inserting, reading and removing values.
func Example() {
	pool := slab.New[int]()

	a := pool.Insert(10)
	b := pool.Insert(20)
	pool.Remove(a)
	c := pool.Insert(30) // reuses the freed key

	v, _ := pool.Get(b)
	fmt.Println(a, b, c, pool.Len(), *v)
	// Output: 0 1 0 2 20
}

// Example_intrusiveList links values through pointers into the pool. The
// pointers stay valid while unrelated values come and go.
func Example_intrusiveList() {
	type node struct {
		name string
		next *node
	}

	pool := slab.New[node]()
	_, first := pool.InsertRef(node{name: "first"})
	_, second := pool.InsertRef(node{name: "second"})
	first.next = second

	for i := 0; i < 3*slab.ChunkSize; i++ {
		pool.Remove(pool.Insert(node{name: "noise"}))
	}

	for n := first; n != nil; n = n.next {
		fmt.Println(n.name)
	}
	// Output:
	// first
	// second
}

// ExamplePool_All iterates over the stored values in key order.
func ExamplePool_All() {
	pool := slab.New[string]()
	for _, s := range []string{"a", "b", "c", "d"} {
		pool.Insert(s)
	}
	pool.Remove(1)

	for key, v := range pool.All() {
		fmt.Println(key, *v)
	}
	// Output:
	// 0 a
	// 2 c
	// 3 d
}

// ExamplePool_Retain removes odd values in place.
func ExamplePool_Retain() {
	pool := slab.New[int]()
	for i := 0; i < 6; i++ {
		pool.Insert(i)
	}

	pool.Retain(func(_ slab.Key, v *int) bool {
		return *v%2 == 0
	})

	fmt.Println(pool.Len(), pool.Contains(1), pool.Contains(2))
	// Output: 3 false true
}

// ExamplePool_TryInsert shows a pool bounded by a memory budget.
func ExamplePool_TryInsert() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1}) // smaller than one chunk
	pool := slab.New[int](slab.WithResourceController(rc))

	_, _, err := pool.TryInsert(1)
	fmt.Println(errors.Is(err, slab.ErrMemoryLimitExceeded))
	// Output: true
}

// ExamplePool_FreeUnused shows that compaction renumbers keys.
func ExamplePool_FreeUnused() {
	pool := slab.New[string]()
	for i := 0; i < slab.ChunkSize; i++ {
		pool.Insert("old")
	}
	key := pool.Insert("kept") // first key of the second chunk

	for k := 0; k < slab.ChunkSize; k++ {
		pool.Remove(k)
	}
	freed := pool.FreeUnused()

	fmt.Println(key, freed, *pool.At(0), pool.Capacity() == slab.ChunkSize)
	// Output: 1024 1 kept true
}
