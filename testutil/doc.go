// Package testutil provides testing utilities for slab.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and a reference model of a pool that
// can be driven in lockstep with the real implementation.
//
// # Random Operations
//
//	rng := testutil.NewRNG(seed)
//	if rng.Chance(0.6) {
//	    // insert
//	}
//
// # Reference Model
//
//	model := testutil.NewModel[int]()
//	key := model.Insert(v)        // the key a pool must hand out next
//	v, ok := model.Remove(key)    // the value a pool must return
package testutil
