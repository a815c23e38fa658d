package git

import "errors"

// MockProvider is a test double for Repository.
// It serves predefined commits and diffs without a real Git repository.
type MockProvider struct {
	HeadHash   string
	Order      []string // newest first
	Commits    map[string]*CommitRecord
	Diffs      map[string]*CommitDiff
	Refs       []ReferenceEntry
	Entries    map[string][]TreeEntry
	Blobs      map[string]*Blob
	Files      map[string]*Blob // keyed by path, independent of commit
	DiffErrors map[string]error
	WalkError  error // returned after the walk visits every commit in Order

	// DiffCalls counts Diff invocations per commit hash.
	DiffCalls map[string]int
}

// NewMockProvider builds a linear history from records given newest first.
func NewMockProvider(records ...*CommitRecord) *MockProvider {
	m := &MockProvider{
		Commits:    make(map[string]*CommitRecord),
		Diffs:      make(map[string]*CommitDiff),
		Entries:    make(map[string][]TreeEntry),
		Blobs:      make(map[string]*Blob),
		Files:      make(map[string]*Blob),
		DiffErrors: make(map[string]error),
		DiffCalls:  make(map[string]int),
	}
	for _, rec := range records {
		m.Order = append(m.Order, rec.Hash)
		m.Commits[rec.Hash] = rec
	}
	if len(records) > 0 {
		m.HeadHash = records[0].Hash
	}
	return m
}

// Head returns the configured head or ErrNotFound when empty.
func (m *MockProvider) Head() (string, error) {
	if m.HeadHash == "" {
		return "", &ObjectError{Op: "resolve HEAD", Kind: ErrNotFound, Err: errors.New("unborn HEAD")}
	}
	return m.HeadHash, nil
}

// Walk visits Order starting at from.
func (m *MockProvider) Walk(from string, fn func(hash string) error) error {
	start := -1
	for i, h := range m.Order {
		if h == from {
			start = i
			break
		}
	}
	if start < 0 {
		return &ObjectError{Op: "walk", Hash: from, Kind: ErrNotFound, Err: errors.New("unknown commit")}
	}
	for _, h := range m.Order[start:] {
		if err := fn(h); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return m.WalkError
}

// Commit returns the predefined record.
func (m *MockProvider) Commit(hash string) (*CommitRecord, error) {
	c, ok := m.Commits[hash]
	if !ok {
		return nil, &ObjectError{Op: "read commit", Hash: hash, Kind: ErrNotFound, Err: errors.New("unknown commit")}
	}
	return c, nil
}

// Diff returns the predefined diff, an injected error, or an empty diff.
func (m *MockProvider) Diff(c *CommitRecord) (*CommitDiff, error) {
	m.DiffCalls[c.Hash]++
	if err, ok := m.DiffErrors[c.Hash]; ok {
		return nil, err
	}
	if d, ok := m.Diffs[c.Hash]; ok {
		return d, nil
	}
	return &CommitDiff{}, nil
}

// References returns the predefined references sorted.
func (m *MockProvider) References() ([]ReferenceEntry, error) {
	refs := append([]ReferenceEntry(nil), m.Refs...)
	SortReferences(refs)
	return refs, nil
}

// Tree returns the predefined entries for the commit.
func (m *MockProvider) Tree(commitHash string) ([]TreeEntry, error) {
	return m.Entries[commitHash], nil
}

// Blob returns the predefined blob.
func (m *MockProvider) Blob(hash string) (*Blob, error) {
	b, ok := m.Blobs[hash]
	if !ok {
		return nil, &ObjectError{Op: "read blob", Hash: hash, Kind: ErrNotFound, Err: errors.New("unknown blob")}
	}
	return b, nil
}

// FileAt returns the predefined file for path.
func (m *MockProvider) FileAt(commitHash, path string) (*Blob, error) {
	b, ok := m.Files[path]
	if !ok {
		return nil, &ObjectError{Op: "read file " + path, Hash: commitHash, Kind: ErrNotFound, Err: errors.New("file not found")}
	}
	return b, nil
}
