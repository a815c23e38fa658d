// Package history walks a repository newest-first and emits one log record
// and at most one commit page per commit, resuming from a cache cursor.
package history

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/masmgr/stagit-go/internal/cache"
	"github.com/masmgr/stagit-go/internal/git"
)

// PageRenderer renders the per-commit artifacts.
type PageRenderer interface {
	PageExists(hash string) (bool, error)
	WritePage(c *git.CommitRecord, d *git.CommitDiff) error
	// LogLine returns a single newline-terminated record. d is nil when
	// the diff is unavailable.
	LogLine(c *git.CommitRecord, d *git.CommitDiff) []byte
}

// Options controls a walk.
type Options struct {
	LogLimit int // visible log lines; 0 means unlimited
}

// Result describes what a walk did.
type Result struct {
	Walked        int
	LogLines      int
	CacheLines    int
	PagesWritten  int
	PagesExisting int
	Remaining     int
	DiffFailures  int
	ReachedCursor bool
	// Err is the provider error that ended the walk early, if any. Output
	// written before it stays valid.
	Err error
}

// Degraded reports whether the walk stopped before reaching its end.
func (r *Result) Degraded() bool {
	return r.Err != nil
}

// outputError marks failures writing the output tree, which abort the run.
type outputError struct {
	err error
}

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// Walker drives the incremental rendering of commit history.
type Walker struct {
	provider git.Provider
	pages    PageRenderer
	opts     Options
	logger   *slog.Logger
}

// NewWalker creates a walker.
func NewWalker(provider git.Provider, pages PageRenderer, opts Options, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{provider: provider, pages: pages, opts: opts, logger: logger}
}

func (w *Walker) visible(res *Result) bool {
	return w.opts.LogLimit <= 0 || res.LogLines < w.opts.LogLimit
}

// Walk visits commits from head until cursor (exclusive). Visible log
// records go to logOut; every record goes to cacheOut when it is non-nil.
// The returned error is only set for output failures; provider failures
// end the walk and are reported in Result.Err.
func (w *Walker) Walk(head, cursor string, logOut, cacheOut io.Writer) (*Result, error) {
	res := &Result{}

	err := w.provider.Walk(head, func(hash string) error {
		if cursor != "" && hash == cursor {
			res.ReachedCursor = true
			return git.ErrStopWalk
		}
		res.Walked++

		visible := w.visible(res)
		if !visible && cacheOut == nil {
			exists, err := w.pages.PageExists(hash)
			if err != nil {
				return &outputError{err}
			}
			if exists {
				res.Remaining++
				return nil
			}
		}

		c, err := w.provider.Commit(hash)
		if err != nil {
			return err
		}
		d, err := w.provider.Diff(c)
		if err != nil {
			res.DiffFailures++
			w.logger.Warn("cannot compute diff, skipping commit page", "hash", hash, "error", err)
			d = nil
		}

		line := w.pages.LogLine(c, d)
		if visible {
			if _, err := logOut.Write(line); err != nil {
				return &outputError{fmt.Errorf("write log: %w", err)}
			}
			res.LogLines++
		} else {
			res.Remaining++
		}
		if cacheOut != nil {
			if _, err := cacheOut.Write(line); err != nil {
				return &outputError{err}
			}
			res.CacheLines++
		}

		if d == nil {
			return nil
		}
		exists, err := w.pages.PageExists(hash)
		if err != nil {
			return &outputError{err}
		}
		if exists {
			res.PagesExisting++
			return nil
		}
		if err := w.pages.WritePage(c, d); err != nil {
			return &outputError{err}
		}
		res.PagesWritten++
		return nil
	})

	if err != nil {
		var oe *outputError
		if errors.As(err, &oe) {
			return res, oe.err
		}
		res.Err = err
		w.logger.Warn("history walk stopped early", "head", head, "walked", res.Walked, "error", err)
	}
	return res, nil
}

// AppendPrevious carries the records of an earlier run after the ones just
// walked. The cache stream receives them verbatim; the visible log only
// while the line budget lasts. Nothing is appended when the walk did not
// reach the cursor, because the cached records would then not line up
// with the new history.
func (w *Walker) AppendPrevious(res *Result, old *cache.Cache, logOut, cacheOut io.Writer) error {
	if !old.HasCursor() || len(old.Body) == 0 {
		return nil
	}
	if !res.ReachedCursor {
		if !res.Degraded() {
			w.logger.Warn("cache cursor not found in history, discarding cached log", "cursor", old.Cursor)
		}
		return nil
	}

	if cacheOut != nil {
		if _, err := cacheOut.Write(old.Body); err != nil {
			return err
		}
	}

	if w.opts.LogLimit <= 0 {
		if _, err := logOut.Write(old.Body); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
		res.LogLines += len(old.Records())
		return nil
	}
	for _, rec := range old.Records() {
		if !w.visible(res) {
			res.Remaining++
			continue
		}
		if _, err := logOut.Write(rec); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
		res.LogLines++
	}
	return nil
}
