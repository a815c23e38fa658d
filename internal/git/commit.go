package git

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// newCommitRecord copies the fields the renderer needs out of a go-git commit.
// Only the first parent is kept.
func newCommitRecord(c *object.Commit) (*CommitRecord, error) {
	if c.Author.Name == "" && c.Author.Email == "" && c.Author.When.IsZero() {
		return nil, &ObjectError{Op: "read commit", Hash: c.Hash.String(), Kind: ErrCorrupt, Err: errors.New("missing author")}
	}

	rec := &CommitRecord{
		Hash:      c.Hash.String(),
		Author:    Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer: Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Summary:   Summarize(c.Message),
		Message:   c.Message,
		TreeHash:  c.TreeHash.String(),
	}
	if len(c.ParentHashes) > 0 {
		rec.ParentHash = c.ParentHashes[0].String()
	}
	return rec, nil
}

// Summarize returns the first paragraph of a commit message folded into a
// single line.
func Summarize(message string) string {
	message = strings.TrimLeft(message, " \t\r\n")

	var b strings.Builder
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return b.String()
}
