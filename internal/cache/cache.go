// Package cache implements the resumable log cache: a single file whose first
// line is the hash of the newest rendered commit, followed by the rendered
// log-line records of every older commit.
package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/masmgr/stagit-go/internal/fsutil"
	"github.com/masmgr/stagit-go/internal/git"
)

// ErrMalformed is returned when the first line is not an object id.
var ErrMalformed = errors.New("malformed cache cursor")

// Cache is the previously persisted state.
type Cache struct {
	Cursor string // empty when there is nothing to resume from
	Body   []byte // log-line records, oldest run last
}

// HasCursor reports whether a resumable cursor was read.
func (c *Cache) HasCursor() bool {
	return c.Cursor != ""
}

// Records splits the body into its log-line records.
func (c *Cache) Records() [][]byte {
	if len(c.Body) == 0 {
		return nil
	}
	lines := bytes.SplitAfter(c.Body, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Parse decodes a cache artifact. Invalid content returns an empty cache and
// an error matching ErrMalformed.
func Parse(data []byte) (*Cache, error) {
	if len(data) == 0 {
		return &Cache{}, nil
	}
	first, rest, found := bytes.Cut(data, []byte("\n"))
	cursor := string(first)
	if !found || !git.ValidHash(cursor) {
		return &Cache{}, fmt.Errorf("%w: %q", ErrMalformed, truncate(cursor, 64))
	}
	return &Cache{Cursor: cursor, Body: rest}, nil
}

// Load reads the cache at name. A missing file is an empty cache.
func Load(fs billy.Filesystem, name string) (*Cache, error) {
	f, err := fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Cache{}, nil
		}
		return nil, fmt.Errorf("open cache %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", name, err)
	}
	return Parse(data)
}

// Writer stages a new cache in a temporary file next to the final path.
// Nothing replaces the old cache until Commit.
type Writer struct {
	fs   billy.Filesystem
	name string
	tmp  billy.File
	err  error
	done bool
}

// Create opens a temporary file in the cache's directory.
func Create(fs billy.Filesystem, name string) (*Writer, error) {
	dir := path.Dir(name)
	if dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}
	tmp, err := fsutil.CreateTemp(fs, dir, ".cache-", 0o644)
	if err != nil {
		return nil, fmt.Errorf("create cache temp file in %s: %w", dir, err)
	}
	return &Writer{fs: fs, name: name, tmp: tmp}, nil
}

// WriteCursor writes the header line.
func (w *Writer) WriteCursor(hash string) error {
	_, err := io.WriteString(w, hash+"\n")
	return err
}

// Write appends raw record bytes. The first error is sticky.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.tmp.Write(p)
	if err != nil {
		w.err = fmt.Errorf("write cache: %w", err)
	}
	return n, w.err
}

// Commit closes the temporary file and renames it over the cache path.
func (w *Writer) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	tmpName := w.tmp.Name()
	if err := w.tmp.Close(); err != nil && w.err == nil {
		w.err = fmt.Errorf("close cache: %w", err)
	}
	if w.err != nil {
		_ = w.fs.Remove(tmpName)
		return w.err
	}
	if err := w.fs.Rename(tmpName, w.name); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("replace cache %s: %w", w.name, err)
	}
	return nil
}

// Abort discards the temporary file and keeps the old cache.
func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	tmpName := w.tmp.Name()
	_ = w.tmp.Close()
	if err := w.fs.Remove(tmpName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache temp file: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
