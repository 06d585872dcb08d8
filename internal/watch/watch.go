// Package watch re-runs a callback whenever a batch file changes.
//
// fsnotify reports events per directory, so the watcher subscribes to the
// file's parent directory and filters events by path. Bursts of events are
// debounced, and a change whose content fingerprint matches the last run is
// ignored.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/danieljhkim/rectscreen/internal/hash"
)

// DefaultDebounce is how long the watcher waits after the last event before
// running the callback.
const DefaultDebounce = 300 * time.Millisecond

// Func is called with the watched path after each change. Its error is
// passed to the watcher's error handler and does not stop watching.
type Func func(path string) error

// Watcher runs a Func when one file changes.
type Watcher struct {
	hasher   hash.Hasher
	debounce time.Duration
	logger   *slog.Logger
	onError  func(error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watcher diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithErrorHandler sets the function receiving callback and watcher errors.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// New creates a Watcher that fingerprints the file with hasher.
func New(hasher hash.Hasher, opts ...Option) *Watcher {
	w := &Watcher{
		hasher:   hasher,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls fn once for the current content of path, then again after every
// change, until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, path string, fn Func) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	var lastSum string
	trigger := func() {
		sum, err := w.hasher.HashFile(absPath)
		if err != nil {
			w.onError(err)
			return
		}
		if sum == lastSum {
			w.logger.Debug("content unchanged, skipping", slog.String("path", absPath))
			return
		}
		lastSum = sum
		if err := fn(path); err != nil {
			w.onError(err)
		}
	}

	trigger()

	// Since Go 1.23 a stopped timer never delivers a stale tick.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			eventPath, _ := filepath.Abs(event.Name)
			if eventPath != absPath {
				continue
			}
			w.logger.Debug("file event", slog.String("path", absPath), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case <-timer.C:
			trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		}
	}
}
