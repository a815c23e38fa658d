package output

import (
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/masmgr/stagit-go/internal/git"
)

func newTestRenderer(t *testing.T, opts Options) (*Renderer, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	site := NewSite(fs)
	if err := site.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	repo := RepoInfo{Name: "demo.git", StrippedName: "demo", Description: "a <demo> repo"}
	return NewRenderer(site, repo, opts), fs
}

func readPage(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func testCommit(hash, summary string) *git.CommitRecord {
	when := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	sig := git.Signature{Name: "Jane Doe", Email: "jane@example.com", When: when}
	return &git.CommitRecord{
		Hash:      hash,
		Author:    sig,
		Committer: sig,
		Summary:   summary,
		Message:   summary + "\n\nBody text.\n",
	}
}

func hashOf(c byte) string {
	return strings.Repeat(string(c), 40)
}
