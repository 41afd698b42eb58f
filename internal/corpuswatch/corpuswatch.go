// Package corpuswatch wraps fsnotify to notify the fuzzing loop that a new
// raw seed file has appeared in a watched directory. It only supplies the
// notification, grounded on the teacher's internal/runtime/vfs
// fsnotify wrapper; the on-disk corpus format itself remains a driver
// concern.
package corpuswatch

import (
	"github.com/fsnotify/fsnotify"
)

// SeedEvent is one newly-available raw seed: a file created or written
// inside a watched directory.
type SeedEvent struct {
	Path string
}

// Watcher notifies on new or modified files in one or more watched
// directories.
type Watcher struct {
	w    *fsnotify.Watcher
	seed chan SeedEvent
	errs chan error
}

// New starts watching dirs for Create and Write events.
func New(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	cw := &Watcher{w: w, seed: make(chan SeedEvent, 128), errs: make(chan error, 1)}
	go cw.loop()

	return cw, nil
}

func (cw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				cw.seed <- SeedEvent{Path: ev.Name}
			}
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}

			cw.errs <- err
		}
	}
}

func (cw *Watcher) Seeds() <-chan SeedEvent { return cw.seed }
func (cw *Watcher) Errors() <-chan error    { return cw.errs }
func (cw *Watcher) Close() error            { return cw.w.Close() }
