// Package watch rebuilds a site whenever the references of its repository
// change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period before a rebuild starts.
const DefaultDelay = 350 * time.Millisecond

// Watcher runs rebuild after changes below a git directory settle.
type Watcher struct {
	gitDir  string
	delay   time.Duration
	rebuild func(ctx context.Context) error
	logger  *slog.Logger
}

// New creates a watcher for gitDir.
func New(gitDir string, delay time.Duration, rebuild func(ctx context.Context) error, logger *slog.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{gitDir: gitDir, delay: delay, rebuild: rebuild, logger: logger}
}

// Run watches until ctx is cancelled. Rebuilds never overlap; changes seen
// while one runs schedule exactly one more. Rebuild errors are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	paths := watchPaths(w.gitDir)
	if len(paths) == 0 {
		return fmt.Errorf("watch %s: not a directory", w.gitDir)
	}
	for _, path := range paths {
		w.logger.Debug("adding path to FS watcher", slog.String("path", path))
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	pending := make(chan struct{}, 1)
	d := NewDebouncer(w.delay, func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			w.logger.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			d.Trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", slog.Any("error", err))
		case <-pending:
			w.logger.Info("repository changed, rebuilding")
			if err := w.rebuild(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.logger.Error("rebuild failed", slog.Any("error", err))
			}
		}
	}
}

// watchPaths returns the directories whose entries change when a branch or
// tag moves: the git dir itself (HEAD, packed-refs) and the loose ref
// directories.
func watchPaths(gitDir string) []string {
	var paths []string
	for _, p := range []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			paths = append(paths, p)
		}
	}
	return paths
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".lock" || ext == ".ipc" {
		return true
	}
	base := filepath.Base(name)
	// object writes and the index do not move refs
	return base == "index" || strings.HasPrefix(base, "tmp_")
}
