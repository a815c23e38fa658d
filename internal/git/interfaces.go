package git

// Provider is the read-only view of a repository the renderer works from.
// Object handles obtained by an implementation never outlive a single call.
type Provider interface {
	// Head returns the commit hash HEAD resolves to. An unborn HEAD yields
	// an error matching ErrNotFound.
	Head() (string, error)
	// Walk calls fn for every commit reachable from the given hash, newest
	// first. Returning ErrStopWalk from fn ends the walk without error.
	Walk(from string, fn func(hash string) error) error
	// Commit extracts the metadata of one commit.
	Commit(hash string) (*CommitRecord, error)
	// Diff computes the statistics of a commit against its first parent.
	Diff(c *CommitRecord) (*CommitDiff, error)
	// References returns branches and tags in display order.
	References() ([]ReferenceEntry, error)
	// Tree lists every file reachable from the commit's tree.
	Tree(commitHash string) ([]TreeEntry, error)
	// Blob reads a file object.
	Blob(hash string) (*Blob, error)
	// FileAt reads the file at path in the given commit's tree.
	FileAt(commitHash, path string) (*Blob, error)
}

// Compile-time interface conformance checks.
var (
	_ Provider = (*Repository)(nil)
	_ Provider = (*MockProvider)(nil)
)
