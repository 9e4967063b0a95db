// Package watcher reports changes to a configuration file for live
// reload.
//
// The watcher subscribes to the file's directory rather than the file
// itself. Editors that save by writing a temp file and renaming it over
// the original replace the inode, which a file-level watch would lose.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed  = errors.New("watcher closed")
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrHandlerPanic   = errors.New("watcher handler panicked")
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when the watched file changes.
type Handler func(event Event)

// ErrorHandler is called for errors reported by the OS watcher.
type ErrorHandler func(err error)

// Watcher monitors one file for changes.
type Watcher struct {
	mu sync.Mutex

	path string
	dir  string

	handler Handler
	onError ErrorHandler

	// Events for the file within this window collapse into one,
	// carrying the last operation.
	debounce time.Duration

	fsw *fsnotify.Watcher

	started   bool
	closed    bool
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
// Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the callback for watch errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(w *Watcher) {
		w.onError = h
	}
}

// New creates a watcher for path. The file need not exist yet, but its
// directory must.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		dir:      filepath.Dir(absPath),
		handler:  handler,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins delivering events in a background goroutine. Delivery
// stops when ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true

	w.wg.Add(1)
	go w.processLoop(ctx)

	return nil
}

// Close stops the watcher and waits for the event loop to exit.
// It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.closeCh)
		w.mu.Unlock()

		w.wg.Wait()
		err = w.fsw.Close()
	})
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop(ctx context.Context) {
	defer w.wg.Done()

	var (
		pending Event
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			event, ok := w.convertEvent(fsEvent)
			if !ok {
				continue
			}
			if w.debounce == 0 {
				w.emitEvent(event)
				continue
			}
			pending = event
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.emitEvent(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// convertEvent keeps events for the watched file and drops the rest,
// including permission-only changes.
func (w *Watcher) convertEvent(fsEvent fsnotify.Event) (Event, bool) {
	if filepath.Clean(fsEvent.Name) != w.path {
		return Event{}, false
	}

	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return Event{}, false
	}

	return Event{
		Path: w.path,
		Op:   op,
		Time: time.Now(),
	}, true
}

// convertOp picks the most significant operation in fsOp.
func convertOp(fsOp fsnotify.Op) (Operation, bool) {
	switch {
	case fsOp.Has(fsnotify.Remove):
		return OpRemove, true
	case fsOp.Has(fsnotify.Rename):
		return OpRename, true
	case fsOp.Has(fsnotify.Create):
		return OpCreate, true
	case fsOp.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// emitEvent calls the handler with panic recovery to keep the watcher
// goroutine alive. A recovered panic is passed to the error handler.
func (w *Watcher) emitEvent(event Event) {
	if w.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && w.onError != nil {
			w.onError(fmt.Errorf("%w: %s: %v", ErrHandlerPanic, event.Path, r))
		}
	}()
	w.handler(event)
}
