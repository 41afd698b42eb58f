//go:build !unix
// +build !unix

package engine

import (
	"sync"

	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
)

// signalSlot mirrors the unix build's slot so Engine's field type is
// identical across platforms; non-unix builds simply never populate it,
// since golang.org/x/sys/unix's signal set has no portable equivalent.
type signalSlot struct {
	mu      sync.Mutex
	failure *fzerr.TestFailure
}

func newSignalSlot() *signalSlot { return &signalSlot{} }

func (s *signalSlot) takeAndClear() *fzerr.TestFailure {
	s.mu.Lock()
	f := s.failure
	s.failure = nil
	s.mu.Unlock()

	return f
}

func (e *Engine[T, C, S, A, U]) startSignalWatcher() func() {
	return func() {}
}
