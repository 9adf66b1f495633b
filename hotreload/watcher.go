// Package hotreload polls files for modification and runs a reload action
// for each changed file.
package hotreload

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher tracks the modification time of a set of files. It is driven by
// Poll, typically once per frame or on a ticker.
type Watcher struct {
	mu      sync.Mutex
	entries []*entry
	stat    func(string) (fs.FileInfo, error)
	logger  *slog.Logger
}

type entry struct {
	path    string
	modTime time.Time
	exists  bool
	actions []func() error
}

// New creates an empty watcher logging through logger (slog.Default when
// nil).
func New(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{stat: os.Stat, logger: logger}
}

// Add registers fn to run when path changes. The current modification time
// is the baseline; a missing file is watched for creation.
func (w *Watcher) Add(path string, fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range w.entries {
		if e.path == path {
			e.actions = append(e.actions, fn)
			return nil
		}
	}
	e := &entry{path: path, actions: []func() error{fn}}
	info, err := w.stat(path)
	switch {
	case err == nil:
		e.modTime, e.exists = info.ModTime(), true
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w.entries = append(w.entries, e)
	return nil
}

// Paths returns the watched paths in registration order.
func (w *Watcher) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.path
	}
	return out
}

// Poll runs the actions of every file whose modification time changed
// since the last poll and records the new time. Removed files are
// remembered as missing and fire again when recreated. Action errors are
// joined; every changed file is still processed.
func (w *Watcher) Poll() error {
	w.mu.Lock()
	var changed []*entry
	for _, e := range w.entries {
		info, err := w.stat(e.path)
		if err != nil {
			if e.exists {
				w.logger.Warn("watched file unavailable", "path", e.path, "err", err)
			}
			e.exists = false
			continue
		}
		if e.exists && info.ModTime().Equal(e.modTime) {
			continue
		}
		e.modTime, e.exists = info.ModTime(), true
		changed = append(changed, e)
	}
	w.mu.Unlock()

	var errs []error
	for _, e := range changed {
		w.logger.Info("reloading", "path", e.path)
		for _, fn := range e.actions {
			if err := fn(); err != nil {
				errs = append(errs, fmt.Errorf("reload %s: %w", e.path, err))
			}
		}
	}
	return errors.Join(errs...)
}
