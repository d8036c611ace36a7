package slab

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with slab-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a pool name field to the logger (useful when several pools
// share one handler).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("pool", name),
	}
}

// LogChunkAllocated logs the growth of a pool by one chunk.
func (l *Logger) LogChunkAllocated(ctx context.Context, chunk, capacity int) {
	l.DebugContext(ctx, "chunk allocated",
		"chunk", chunk,
		"capacity", capacity,
	)
}

// LogGrowthRefused logs a chunk allocation refused by the memory budget.
func (l *Logger) LogGrowthRefused(ctx context.Context, chunk int, bytes int64, err error) {
	l.WarnContext(ctx, "chunk allocation refused",
		"chunk", chunk,
		"bytes", bytes,
		"error", err,
	)
}

// LogChunksFreed logs a FreeUnused pass.
func (l *Logger) LogChunksFreed(ctx context.Context, freed, remaining int) {
	if freed == 0 {
		l.DebugContext(ctx, "no unused chunks",
			"chunks", remaining,
		)
		return
	}
	l.InfoContext(ctx, "unused chunks freed",
		"freed", freed,
		"chunks", remaining,
	)
}

// LogInvalidKey logs a rejected keyed operation.
func (l *Logger) LogInvalidKey(ctx context.Context, op string, key Key) {
	l.WarnContext(ctx, "invalid key",
		"op", op,
		"key", key,
	)
}
