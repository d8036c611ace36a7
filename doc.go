// Package slab provides a slab allocator (object pool) whose values never move.
//
// A Pool hands out integer keys for inserted values. As long as a value stays
// in the pool its address does not change, no matter how many other values are
// inserted or removed. This makes it safe to keep *T pointers into the pool and
// to build intrusive or self-referential structures inside it.
//
// # Quick Start
//
//	pool := slab.New[string]()
//
//	key, ref := pool.InsertRef("hello")
//	fmt.Println(*ref)             // hello
//	v, ok := pool.Get(key)        // same address as ref
//	pool.Remove(key)              // key may be reused by the next insert
//
// # Storage Layout
//
// Values live in chunks of ChunkSize slots. A chunk is allocated when an
// insert needs it and is never resized or moved. A key decomposes into a
// chunk index (key / ChunkSize) and a slot index (key % ChunkSize).
//
// Removed slots form a free list. The most recently freed key is handed out
// first; when no slot is free, keys grow from the end of the last chunk.
//
// # Invalid Keys
//
// Get, GetMut and Contains report absence with a false result. Remove and At
// treat an invalid key as a programming error and panic with a *KeyError
// before touching any state. TryRemove returns the *KeyError instead.
//
// # Compaction
//
// FreeUnused releases chunks that hold no values. Chunks after a released
// chunk move down, which RENUMBERS their keys. Pointers stay valid, keys do
// not. Call it only when no keys into later chunks are live, or treat it as a
// rare, deliberate compaction.
//
// # Mutation
//
// GetMut, IterMut, AllMut and Retain hand out writable pointers. Writing a
// field is fine; replacing a value that other code points into is the
// caller's responsibility.
//
// # Memory Budget
//
// A pool can reserve chunk memory from a resource.Controller, which may be
// shared by several pools:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	pool := slab.New[Node](slab.WithResourceController(rc))
//
//	key, ref, err := pool.TryInsert(node) // ErrMemoryLimitExceeded when full
//
// # Thread Safety
//
// A Pool is not safe for concurrent use. Callers must serialize mutating
// operations; read-only operations may run concurrently with each other.
package slab
