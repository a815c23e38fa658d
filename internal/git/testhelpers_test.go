package git

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testRepo is an in-memory repository with a scripted clock.
type testRepo struct {
	t    *testing.T
	repo *gogit.Repository
	wt   *gogit.Worktree
	fs   billy.Filesystem
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, repo: repo, wt: wt, fs: fs}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	if err := util.WriteFile(r.fs, path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile(%s): %v", path, err)
	}
	if _, err := r.wt.Add(path); err != nil {
		r.t.Fatalf("Add(%s): %v", path, err)
	}
}

func (r *testRepo) remove(path string) {
	r.t.Helper()
	if _, err := r.wt.Remove(path); err != nil {
		r.t.Fatalf("Remove(%s): %v", path, err)
	}
}

// commit records a commit one hour after the previous one.
func (r *testRepo) commit(msg string) string {
	r.t.Helper()
	r.n++
	when := testEpoch.Add(time.Duration(r.n) * time.Hour)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return h.String()
}

// commitWithParents records a commit with explicit parents, first parent
// first.
func (r *testRepo) commitWithParents(msg string, parents ...string) string {
	r.t.Helper()
	r.n++
	when := testEpoch.Add(time.Duration(r.n) * time.Hour)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	hashes := make([]plumbing.Hash, len(parents))
	for i, p := range parents {
		hashes[i] = plumbing.NewHash(p)
	}
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig, Parents: hashes})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return h.String()
}

func (r *testRepo) branch(name, hash string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(hash))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("SetReference(%s): %v", name, err)
	}
}

func (r *testRepo) provider() *Repository {
	return NewRepository(r.repo, DefaultOptions())
}

func (r *testRepo) diff(hash string) *CommitDiff {
	r.t.Helper()
	p := r.provider()
	c, err := p.Commit(hash)
	if err != nil {
		r.t.Fatalf("Commit(%s): %v", hash, err)
	}
	d, err := p.Diff(c)
	if err != nil {
		r.t.Fatalf("Diff(%s): %v", hash, err)
	}
	return d
}

func assertTotals(t *testing.T, d *CommitDiff) {
	t.Helper()
	added, deleted := 0, 0
	for _, f := range d.Files {
		added += f.Added
		deleted += f.Deleted
	}
	if added != d.TotalAdded || deleted != d.TotalDeleted {
		t.Errorf("totals = +%d -%d, per-file sums = +%d -%d", d.TotalAdded, d.TotalDeleted, added, deleted)
	}
}

func mustHash(s string) plumbing.Hash {
	return plumbing.NewHash(s)
}
