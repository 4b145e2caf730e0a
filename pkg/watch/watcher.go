// Package watch re-runs analysis whenever a live combat log grows.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of appends into a single re-run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one combat log file and invokes OnChange after each
// debounced burst of writes. The log grows while a raid is in progress,
// so change bursts are the norm rather than the exception.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	mu       sync.Mutex
	lastSize int64
	lastMod  time.Time
	running  bool

	// OnChange runs after the log changed. A file that shrank was rotated
	// and is reported with fresh=true so callers can reset their state.
	OnChange func(fresh bool) error

	// OnError receives watch and callback errors; the loop keeps going.
	OnError func(err error)
}

// New creates a watcher for the given log file. The file must exist.
func New(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	stat, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat log: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watching the parent directory survives rotate-and-recreate.
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		watcher:  fsWatcher,
		path:     absPath,
		debounce: DefaultDebounce,
		lastSize: stat.Size(),
		lastMod:  stat.ModTime(),
	}, nil
}

// Run blocks processing change events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || abs != w.path {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.handleChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleChange() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	stat, err := os.Stat(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if stat.Size() == w.lastSize && stat.ModTime().Equal(w.lastMod) {
		return
	}

	fresh := stat.Size() < w.lastSize
	w.lastSize = stat.Size()
	w.lastMod = stat.ModTime()

	if w.OnChange != nil {
		if err := w.OnChange(fresh); err != nil {
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
