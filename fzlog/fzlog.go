// Package fzlog provides the small leveled event logger the fuzzing loop
// uses to report lifecycle transitions, pool admissions, and stop
// conditions. It wraps log/slog rather than hand-rolling a formatter,
// matching how the rest of this module prefers a stdlib-idiomatic seam
// over a bespoke one wherever the ecosystem already supplies it.
package fzlog

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a thin facade over *slog.Logger scoped to the engine's event
// vocabulary. Kept as a concrete type (not an interface) since the engine
// owns exactly one implementation and callers benefit from inlining.
type Logger struct {
	inner *slog.Logger
}

// New builds a Logger writing leveled text to w. A nil w disables output
// (events are still computed cheaply via slog's level gating).
func New(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = io.Discard
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return &Logger{inner: slog.New(h)}
}

// Default returns a Logger writing info-level events to stderr.
func Default() *Logger {
	return New(os.Stderr, slog.LevelInfo)
}

func (l *Logger) IterationStarted(iteration uint64) {
	l.inner.Debug("iteration started", "iteration", iteration)
}

func (l *Logger) PoolAdmitted(poolName string, index uint64, complexity float64) {
	l.inner.Info("pool admitted candidate", "pool", poolName, "storage_index", index, "complexity", complexity)
}

func (l *Logger) PoolEvicted(poolName string, index uint64) {
	l.inner.Info("pool evicted candidate", "pool", poolName, "storage_index", index)
}

func (l *Logger) TestFailure(kind string, id string) {
	l.inner.Warn("test failure observed", "kind", kind, "id", id)
}

func (l *Logger) SearchSpaceExhausted(reason string) {
	l.inner.Debug("ordered search space exhausted, falling back to random_arbitrary", "reason", reason)
}

func (l *Logger) Stopping(reason string) {
	l.inner.Info("fuzzing loop stopping", "reason", reason)
}

func (l *Logger) EngineError(err error) {
	l.inner.Error("engine-fatal error", "error", err)
}
