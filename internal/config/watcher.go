// ABOUTME: Polling config watcher: reloads the merged config when any watched file's mtime changes
// ABOUTME: Run blocks until ctx is done; a reload that fails to parse is reported, not applied

package config

import (
	"context"
	"os"
	"time"
)

// DefaultWatchInterval is how often watched files are stat'ed.
const DefaultWatchInterval = 2 * time.Second

// Watcher reloads config files when they change on disk.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(*File, error)
	mtimes   map[string]time.Time
}

// NewWatcher returns a watcher over paths. onChange receives the freshly
// merged config, or the error that stopped it loading. A non-positive
// interval means DefaultWatchInterval.
func NewWatcher(paths []string, interval time.Duration, onChange func(*File, error)) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		mtimes:   make(map[string]time.Time, len(paths)),
	}
	w.snapshot()
	return w
}

// Run polls until ctx is done and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check reloads and notifies if anything changed since the last check. It
// reports whether a change was seen.
func (w *Watcher) Check() bool {
	if !w.changed() {
		return false
	}
	w.snapshot()
	w.onChange(Load(w.paths...))
	return true
}

// changed compares current mtimes against the last snapshot. A file that
// appears or disappears counts as a change.
func (w *Watcher) changed() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, existed := w.mtimes[path]
		if err != nil {
			if existed {
				return true
			}
			continue
		}
		if !existed || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

func (w *Watcher) snapshot() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
