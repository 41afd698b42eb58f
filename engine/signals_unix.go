//go:build unix
// +build unix

package engine

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
)

// signalSlot is the Go realization of spec.md §5's singleton TEST_FAILURE
// slot: written by the signal-handling goroutine, read and cleared once
// per iteration by the loop. A mutex guards it because signal delivery is
// asynchronous to the fuzzing goroutine, unlike every other piece of
// engine state.
type signalSlot struct {
	mu      sync.Mutex
	failure *fzerr.TestFailure
}

func newSignalSlot() *signalSlot { return &signalSlot{} }

func (s *signalSlot) set(f *fzerr.TestFailure) {
	s.mu.Lock()
	s.failure = f
	s.mu.Unlock()
}

func (s *signalSlot) takeAndClear() *fzerr.TestFailure {
	s.mu.Lock()
	f := s.failure
	s.failure = nil
	s.mu.Unlock()

	return f
}

var abortSignals = []os.Signal{
	unix.SIGSEGV,
	unix.SIGBUS,
	unix.SIGILL,
	unix.SIGFPE,
	unix.SIGABRT,
}

// startSignalWatcher intercepts the abort-class signals a corrupted test
// process can raise. Go's runtime cannot resume execution after most of
// these the way the original engine's handler + longjmp can, so the
// handler records the failure into the signal slot, logs it, then restores
// the signal's default disposition and re-raises it so the process still
// terminates the way it would have without this engine installed.
func (e *Engine[T, C, S, A, U]) startSignalWatcher() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, abortSignals...)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig, ok := <-ch:
				if !ok {
					return
				}

				e.signals.set(&fzerr.TestFailure{
					Kind:  fzerr.FailureSignal,
					ID:    fmt.Sprintf("signal-%s", sig),
					Debug: fmt.Sprintf("received abort signal %s", sig),
				})

				e.log.TestFailure("signal", sig.String())

				signal.Stop(ch)

				if s, ok := sig.(syscall.Signal); ok {
					_ = unix.Kill(unix.Getpid(), s)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		signal.Stop(ch)
	}
}
