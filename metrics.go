package slab

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting pool metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are invoked synchronously from pool operations, so they should
// be cheap.
type MetricsCollector interface {
	// RecordInsert is called after each insert attempt.
	// err is nil if a key was handed out.
	RecordInsert(err error)

	// RecordRemove is called after each remove attempt, including removals
	// performed by Retain.
	RecordRemove(err error)

	// RecordChunkAllocated is called when the pool grows by one chunk.
	RecordChunkAllocated()

	// RecordChunksFreed is called after FreeUnused with the number of chunks dropped.
	RecordChunksFreed(n int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(error)    {}
func (NoopMetricsCollector) RecordRemove(error)    {}
func (NoopMetricsCollector) RecordChunkAllocated() {}
func (NoopMetricsCollector) RecordChunksFreed(int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It is safe to share between pools.
type BasicMetricsCollector struct {
	InsertCount     atomic.Int64
	InsertErrors    atomic.Int64
	RemoveCount     atomic.Int64
	RemoveErrors    atomic.Int64
	ChunksAllocated atomic.Int64
	ChunksFreed     atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(err error) {
	b.InsertCount.Add(1)
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordChunkAllocated implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkAllocated() {
	b.ChunksAllocated.Add(1)
}

// RecordChunksFreed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunksFreed(n int) {
	b.ChunksFreed.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertErrors:    b.InsertErrors.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		ChunksAllocated: b.ChunksAllocated.Load(),
		ChunksFreed:     b.ChunksFreed.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount     int64
	InsertErrors    int64
	RemoveCount     int64
	RemoveErrors    int64
	ChunksAllocated int64
	ChunksFreed     int64
}
