// Package watch reloads files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/internal/logger"
)

// ErrClosed is returned when adding to a watcher that has stopped.
var ErrClosed = errors.New("watcher already closed")

// Handler is called with the path of a changed file.
type Handler func(path string)

// Watcher calls a Handler when watched files are written or recreated.
// Handler calls are serialized on the Run goroutine.
type Watcher struct {
	fs       *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]struct{}
	timers map[string]*time.Timer
	fire   chan string
	closed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce coalesces bursts of events on one file into one call.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// New creates a watcher.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fs,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		fire:     make(chan string, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logger.Named("watch")
	}
	return w, nil
}

// Add watches a file. Its directory is watched so that editors replacing
// the file atomically are still observed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Run dispatches change events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(e)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case path := <-w.fire:
			w.log.Debug("file changed", zap.String("path", path))
			w.handler(path)
		}
	}
}

func (w *Watcher) handleEvent(e fsnotify.Event) {
	name, err := filepath.Abs(e.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; !ok {
		return
	}
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		w.log.Debug("ignoring event", zap.String("path", name), zap.Stringer("op", e.Op))
		return
	}

	if t, ok := w.timers[name]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, name)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			select {
			case w.fire <- name:
			default:
			}
		}
	})
}

func (w *Watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	_ = w.fs.Close()
}
