// Package watch re-runs a callback when Sus sources under a directory tree
// change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Run waits for a burst of events to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher collects file system events for source files.
type Watcher struct {
	w        *fsnotify.Watcher
	exts     []string
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher reporting files whose name ends in one of exts.
// A nil logger discards output.
func New(exts []string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		w:        fw,
		exts:     slices.Clone(exts),
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// SetDebounce changes the settle delay. Non-positive values report every
// event batch immediately.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = max(d, 0)
}

// Add watches dir and every directory below it. Directories whose name
// starts with a dot are skipped.
func (w *Watcher) Add(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// Run delivers changed source paths to onChange until ctx is done. Events
// arriving within the debounce delay of each other are coalesced, and each
// path is reported once per batch, in lexical order. New directories are
// watched as they appear.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	pending := make(map[string]struct{})

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		clear(pending)
		slices.Sort(paths)
		for _, p := range paths {
			onChange(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						w.logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !relevant(ev, w.exts) {
				continue
			}
			w.logger.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			if w.debounce == 0 {
				flush()
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			flush()

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch events dropped", "error", err)
				continue
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}

// relevant reports whether ev changed the contents of a source file.
func relevant(ev fsnotify.Event, exts []string) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return slices.ContainsFunc(exts, func(ext string) bool {
		return strings.HasSuffix(ev.Name, ext)
	})
}
