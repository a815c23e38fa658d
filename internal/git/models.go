package git

import (
	"fmt"
	"strings"
	"time"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// CommitRecord is the materialized view of one commit.
type CommitRecord struct {
	Hash       string
	ParentHash string // empty for root commits
	Author     Signature
	Committer  Signature
	Summary    string
	Message    string
	TreeHash   string
}

// HasParent reports whether the commit has a first parent.
func (c *CommitRecord) HasParent() bool {
	return c.ParentHash != ""
}

// ShortHash returns the abbreviated commit id.
func (c *CommitRecord) ShortHash() string {
	return shortHash(c.Hash)
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
	ChangeKindCopied
	ChangeKindTypeChanged
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	case ChangeKindCopied:
		return "copied"
	case ChangeKindTypeChanged:
		return "typechanged"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter status used in diffstats.
func (k ChangeKind) Letter() string {
	switch k {
	case ChangeKindAdded:
		return "A"
	case ChangeKindModified:
		return "M"
	case ChangeKindDeleted:
		return "D"
	case ChangeKindRenamed:
		return "R"
	case ChangeKindCopied:
		return "C"
	case ChangeKindTypeChanged:
		return "T"
	default:
		return " "
	}
}

// LineOp is the role of a line inside a hunk.
type LineOp int

const (
	LineContext LineOp = iota
	LineAdded
	LineDeleted
)

// DiffLine is one line of a hunk. OldLine and NewLine are 1-based and zero
// when the line does not exist on that side.
type DiffLine struct {
	Op      LineOp
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous run of changed lines with surrounding context.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []DiffLine
}

// Header returns the unified diff hunk header.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// ChangeStat holds the statistics of one changed file.
type ChangeStat struct {
	OldPath string
	NewPath string
	Kind    ChangeKind
	Added   int
	Deleted int
	Binary  bool
	Hunks   []Hunk
}

// Path returns the path the file has after the change.
func (s ChangeStat) Path() string {
	if s.NewPath != "" {
		return s.NewPath
	}
	return s.OldPath
}

// Churn returns total lines changed (added + deleted).
func (s ChangeStat) Churn() int {
	return s.Added + s.Deleted
}

// CommitDiff is the aggregate diff of a commit against its first parent.
type CommitDiff struct {
	Files        []ChangeStat
	TotalAdded   int
	TotalDeleted int
}

// FileCount returns the number of changed files, binary ones included.
func (d *CommitDiff) FileCount() int {
	return len(d.Files)
}

// DeltaCount returns the number of deltas produced by the diff engine.
func (d *CommitDiff) DeltaCount() int {
	return len(d.Files)
}

// TooLarge reports whether the diff body exceeds any of the limits.
// Totals stay valid either way.
func (d *CommitDiff) TooLarge(l DiffLimits) bool {
	return d.FileCount() > l.MaxFiles ||
		d.DeltaCount() > l.MaxDeltas ||
		d.TotalAdded > l.MaxAdded ||
		d.TotalDeleted > l.MaxDeleted
}

// DiffLimits caps the size of a diff rendered in full.
type DiffLimits struct {
	MaxFiles   int
	MaxDeltas  int
	MaxAdded   int
	MaxDeleted int
}

// DefaultDiffLimits returns the caps used when nothing is configured.
func DefaultDiffLimits() DiffLimits {
	return DiffLimits{
		MaxFiles:   1000,
		MaxDeltas:  1000,
		MaxAdded:   100000,
		MaxDeleted: 100000,
	}
}

// RefKind distinguishes branches from tags.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
)

func (k RefKind) String() string {
	if k == RefTag {
		return "tag"
	}
	return "branch"
}

// ReferenceEntry is a branch or tag resolved to the commit it points at.
type ReferenceEntry struct {
	Name     string
	FullName string
	Kind     RefKind
	Commit   *CommitRecord
}

// EntryKind is the type of a tree entry.
type EntryKind int

const (
	EntryBlob EntryKind = iota
	EntrySubmodule
)

// TreeEntry is one file of a recursively listed tree.
type TreeEntry struct {
	Path string
	Mode FileMode
	Hash string
	Kind EntryKind
}

// Name returns the last path element.
func (e TreeEntry) Name() string {
	if i := strings.LastIndexByte(e.Path, '/'); i >= 0 {
		return e.Path[i+1:]
	}
	return e.Path
}

// ShortHash returns the abbreviated object id.
func (e TreeEntry) ShortHash() string {
	return shortHash(e.Hash)
}

// Blob is the content of a file object.
type Blob struct {
	Hash   string
	Size   int64
	Data   []byte
	Binary bool
}

// LineCount returns the number of lines in a text blob, counting a final
// line without a trailing newline.
func (b *Blob) LineCount() int {
	return countLines(string(b.Data))
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
