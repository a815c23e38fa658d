package build

import (
	"errors"

	"github.com/masmgr/stagit-go/internal/git"
	"github.com/masmgr/stagit-go/internal/output"
)

// IndexEntry reads what the multi-repository index shows for repoPath.
// An empty repository has a zero LastCommit.
func IndexEntry(repoPath string) (*output.IndexRepo, error) {
	repo, err := git.Open(repoPath, git.DefaultOptions())
	if err != nil {
		return nil, err
	}
	info, err := ReadRepoInfo(repoPath, repo.GitDir())
	if err != nil {
		return nil, err
	}
	entry := &output.IndexRepo{Name: info.StrippedName, Description: info.Description}

	head, err := repo.Head()
	if errors.Is(err, git.ErrNotFound) {
		return entry, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := repo.Commit(head)
	if err != nil {
		return nil, err
	}
	entry.LastCommit = c.Author.When
	return entry, nil
}
