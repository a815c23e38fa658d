package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/masmgr/stagit-go/internal/fsutil"
)

// Site is the output tree. Every file is written to a temporary file and
// renamed into place, so a page that exists is always complete.
type Site struct {
	fs billy.Filesystem
}

// NewSite wraps the file system rooted at the output directory.
func NewSite(fs billy.Filesystem) *Site {
	return &Site{fs: fs}
}

// Filesystem returns the underlying file system.
func (s *Site) Filesystem() billy.Filesystem {
	return s.fs
}

// Prepare creates the output root and the commit directory. It fails when
// the output tree is not writable.
func (s *Site) Prepare() error {
	for _, dir := range []string{"commit", "file"} {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists reports whether name is present in the output tree.
func (s *Site) Exists(name string) (bool, error) {
	_, err := s.fs.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", name, err)
}

// WriteFile renders name through a buffered writer.
func (s *Site) WriteFile(name string, render func(w io.Writer) error) (err error) {
	dir := path.Dir(name)
	if dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp, err := fsutil.CreateTemp(s.fs, dir, ".page-", 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := render(bw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, name); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
