package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/utils/binary"
)

// Options configures a Repository.
type Options struct {
	ContextLines int // lines of context around each hunk
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{ContextLines: 3}
}

// Repository is a Provider backed by go-git.
type Repository struct {
	repo *gogit.Repository
	opts Options
}

// Open opens the repository at path. Bare repositories are supported.
func Open(path string, opts Options) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return NewRepository(repo, opts), nil
}

// NewRepository wraps an already opened go-git repository.
func NewRepository(repo *gogit.Repository, opts Options) *Repository {
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	return &Repository{repo: repo, opts: opts}
}

// GitDir returns the directory holding the repository's metadata, or an
// empty string for storages that are not on disk.
func (r *Repository) GitDir() string {
	if fs, ok := r.repo.Storer.(*filesystem.Storage); ok {
		return fs.Filesystem().Root()
	}
	return ""
}

// Head returns the commit hash HEAD resolves to.
func (r *Repository) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", objectError("resolve HEAD", "", err)
	}
	return ref.Hash().String(), nil
}

// Walk visits the commits reachable from `from` in committer time order,
// newest first.
func (r *Repository) Walk(from string, fn func(hash string) error) error {
	h, err := parseHash(from)
	if err != nil {
		return err
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: h, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return objectError("walk", from, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := fn(c.Hash.String()); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return storer.ErrStop
			}
			return err
		}
		return nil
	})
	if err != nil {
		var oe *ObjectError
		if errors.As(err, &oe) {
			return err
		}
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return objectError("walk", from, err)
		}
		return err
	}
	return nil
}

// Commit extracts the metadata of one commit.
func (r *Repository) Commit(hash string) (*CommitRecord, error) {
	h, err := parseHash(hash)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, objectError("read commit", hash, err)
	}
	return newCommitRecord(c)
}

// Blob reads a file object and detects whether it holds binary content.
func (r *Repository) Blob(hash string) (*Blob, error) {
	h, err := parseHash(hash)
	if err != nil {
		return nil, err
	}
	b, err := r.repo.BlobObject(h)
	if err != nil {
		return nil, objectError("read blob", hash, err)
	}
	return readBlob(b)
}

// FileAt reads the file at path in the commit's tree.
func (r *Repository) FileAt(commitHash, path string) (*Blob, error) {
	tree, err := r.commitTree(commitHash)
	if err != nil {
		return nil, err
	}
	f, err := tree.File(path)
	if err != nil {
		return nil, objectError("read file "+path, commitHash, err)
	}
	return readBlob(&f.Blob)
}

func (r *Repository) commitTree(commitHash string) (*object.Tree, error) {
	h, err := parseHash(commitHash)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, objectError("read commit", commitHash, err)
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, objectError("read tree", c.TreeHash.String(), err)
	}
	return tree, nil
}

func readBlob(b *object.Blob) (*Blob, error) {
	rd, err := b.Reader()
	if err != nil {
		return nil, objectError("read blob", b.Hash.String(), err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, objectError("read blob", b.Hash.String(), err)
	}
	isBinary, err := binary.IsBinary(bytes.NewReader(data))
	if err != nil {
		return nil, objectError("read blob", b.Hash.String(), err)
	}
	return &Blob{
		Hash:   b.Hash.String(),
		Size:   b.Size,
		Data:   data,
		Binary: isBinary,
	}, nil
}

func parseHash(s string) (plumbing.Hash, error) {
	if !ValidHash(s) {
		return plumbing.ZeroHash, &ObjectError{Op: "parse hash", Hash: s, Kind: ErrNotFound, Err: fmt.Errorf("invalid object id %q", s)}
	}
	return plumbing.NewHash(s), nil
}

// ValidHash reports whether s is a full hexadecimal object id (SHA-1 or SHA-256).
func ValidHash(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// objectError classifies a go-git error into ErrNotFound or ErrCorrupt.
func objectError(op, hash string, err error) error {
	kind := ErrCorrupt
	switch {
	case errors.Is(err, plumbing.ErrObjectNotFound),
		errors.Is(err, plumbing.ErrReferenceNotFound),
		errors.Is(err, object.ErrFileNotFound),
		errors.Is(err, object.ErrDirectoryNotFound),
		errors.Is(err, object.ErrEntryNotFound):
		kind = ErrNotFound
	}
	slog.Debug("object lookup failed", "op", op, "hash", hash, "error", err)
	return &ObjectError{Op: op, Hash: hash, Kind: kind, Err: err}
}
