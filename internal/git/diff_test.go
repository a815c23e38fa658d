package git

import (
	"fmt"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

func TestDiff_RootCommitAddsEverything(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "one\ntwo\n")
	r.write("dir/b.txt", "three")
	h := r.commit("initial")

	d := r.diff(h)
	if d.FileCount() != 2 {
		t.Fatalf("FileCount = %d, want 2", d.FileCount())
	}
	for _, f := range d.Files {
		if f.Kind != ChangeKindAdded {
			t.Errorf("%s kind = %s, want added", f.Path(), f.Kind)
		}
	}
	if d.TotalAdded != 3 || d.TotalDeleted != 0 {
		t.Errorf("totals = +%d -%d, want +3 -0", d.TotalAdded, d.TotalDeleted)
	}
	assertTotals(t, d)
}

func TestDiff_LineCounts(t *testing.T) {
	r := newTestRepo(t)
	r.write("f.txt", "a\nb\nc\n")
	r.commit("initial")
	r.write("f.txt", "a\nB\nc\nd")
	h := r.commit("edit")

	d := r.diff(h)
	if len(d.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(d.Files))
	}
	f := d.Files[0]
	if f.Kind != ChangeKindModified {
		t.Errorf("kind = %s, want modified", f.Kind)
	}
	if f.Added != 2 || f.Deleted != 1 {
		t.Errorf("f.txt = +%d -%d, want +2 -1", f.Added, f.Deleted)
	}
	if len(f.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(f.Hunks))
	}
	if got := f.Hunks[0].Header(); got != "@@ -1,3 +1,4 @@" {
		t.Errorf("Header() = %q, want %q", got, "@@ -1,3 +1,4 @@")
	}
	assertTotals(t, d)
}

func TestDiff_PureRename(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "hello\nworld\n")
	r.commit("initial")
	r.remove("a.txt")
	r.write("b.txt", "hello\nworld\n")
	h := r.commit("rename")

	d := r.diff(h)
	if len(d.Files) != 1 {
		t.Fatalf("files = %d, want 1 (%+v)", len(d.Files), d.Files)
	}
	f := d.Files[0]
	if f.Kind != ChangeKindRenamed {
		t.Errorf("kind = %s, want renamed", f.Kind)
	}
	if f.OldPath != "a.txt" || f.NewPath != "b.txt" {
		t.Errorf("paths = %q -> %q, want a.txt -> b.txt", f.OldPath, f.NewPath)
	}
	if f.Added != 0 || f.Deleted != 0 {
		t.Errorf("rename = +%d -%d, want +0 -0", f.Added, f.Deleted)
	}
}

func TestDiff_RenameNeedsExactContent(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "hello\nworld\n")
	r.commit("initial")
	r.remove("a.txt")
	r.write("b.txt", "hello\nworld!\n")
	h := r.commit("rename and edit")

	d := r.diff(h)
	if len(d.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(d.Files))
	}
	kinds := map[string]ChangeKind{}
	for _, f := range d.Files {
		kinds[f.Path()] = f.Kind
	}
	if kinds["a.txt"] != ChangeKindDeleted || kinds["b.txt"] != ChangeKindAdded {
		t.Errorf("kinds = %v, want a.txt deleted and b.txt added", kinds)
	}
	assertTotals(t, d)
}

func TestDiff_CopyFromModifiedFile(t *testing.T) {
	r := newTestRepo(t)
	r.write("src.txt", "original\n")
	r.commit("initial")
	r.write("src.txt", "changed\n")
	r.write("copy.txt", "original\n")
	h := r.commit("copy")

	d := r.diff(h)
	var copied *ChangeStat
	for i := range d.Files {
		if d.Files[i].Kind == ChangeKindCopied {
			copied = &d.Files[i]
		}
	}
	if copied == nil {
		t.Fatalf("no copied entry in %+v", d.Files)
	}
	if copied.OldPath != "src.txt" || copied.NewPath != "copy.txt" {
		t.Errorf("copy paths = %q -> %q, want src.txt -> copy.txt", copied.OldPath, copied.NewPath)
	}
	if copied.Added != 0 || copied.Deleted != 0 {
		t.Errorf("copy = +%d -%d, want +0 -0", copied.Added, copied.Deleted)
	}
}

func TestDiff_SecondIdenticalFileIsCopy(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "shared\ncontent\n")
	r.commit("initial")
	r.remove("a.txt")
	r.write("b.txt", "shared\ncontent\n")
	r.write("c.txt", "shared\ncontent\n")
	h := r.commit("split")

	d := r.diff(h)
	if len(d.Files) != 2 {
		t.Fatalf("files = %d, want 2 (%+v)", len(d.Files), d.Files)
	}
	want := []struct {
		kind     ChangeKind
		old, new string
	}{
		{ChangeKindRenamed, "a.txt", "b.txt"},
		{ChangeKindCopied, "a.txt", "c.txt"},
	}
	for i, w := range want {
		f := d.Files[i]
		if f.Kind != w.kind || f.OldPath != w.old || f.NewPath != w.new {
			t.Errorf("file %d = %s %q -> %q, want %s %q -> %q", i, f.Kind, f.OldPath, f.NewPath, w.kind, w.old, w.new)
		}
	}
	assertTotals(t, d)
}

func TestDiff_MergeUsesFirstParentOnly(t *testing.T) {
	r := newTestRepo(t)
	r.write("f.txt", "base\n")
	base := r.commit("base")

	r.write("side.txt", "side\n")
	side := r.commit("side")

	r.remove("side.txt")
	r.write("main.txt", "main\n")
	mainline := r.commitWithParents("mainline", base)

	r.write("side.txt", "side\n")
	merge := r.commitWithParents("merge side", mainline, side)

	c, err := r.provider().Commit(merge)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.ParentHash != mainline {
		t.Errorf("ParentHash = %s, want first parent %s", c.ParentHash, mainline)
	}

	d := r.diff(merge)
	if len(d.Files) != 1 {
		t.Fatalf("files = %+v, want only side.txt", d.Files)
	}
	if f := d.Files[0]; f.Path() != "side.txt" || f.Kind != ChangeKindAdded || f.Added != 1 {
		t.Errorf("merge diff = %s %s +%d, want added side.txt +1", f.Kind, f.Path(), f.Added)
	}
	assertTotals(t, d)
}

func TestDiff_EmptyFilesDoNotPair(t *testing.T) {
	r := newTestRepo(t)
	r.write("keep.txt", "x\n")
	r.write("empty-a", "")
	r.commit("initial")
	r.remove("empty-a")
	r.write("empty-b", "")
	h := r.commit("swap empties")

	d := r.diff(h)
	if len(d.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(d.Files))
	}
	for _, f := range d.Files {
		if f.Kind == ChangeKindRenamed {
			t.Errorf("empty files paired as rename: %+v", f)
		}
	}
}

func TestDiff_BinaryFile(t *testing.T) {
	r := newTestRepo(t)
	r.write("img.bin", "\x00\x01\x02\x03")
	r.write("notes.txt", "text\n")
	h := r.commit("binary")

	d := r.diff(h)
	if d.FileCount() != 2 {
		t.Fatalf("FileCount = %d, want 2", d.FileCount())
	}
	for _, f := range d.Files {
		if f.Path() == "img.bin" {
			if !f.Binary {
				t.Errorf("img.bin not flagged binary")
			}
			if f.Added != 0 || f.Deleted != 0 {
				t.Errorf("binary counts = +%d -%d, want 0", f.Added, f.Deleted)
			}
		}
	}
	if d.TotalAdded != 1 {
		t.Errorf("TotalAdded = %d, want 1", d.TotalAdded)
	}
}

func TestDiff_LargeCommitCountedAndFlagged(t *testing.T) {
	r := newTestRepo(t)
	r.write("seed", "seed\n")
	r.commit("seed")
	for i := 0; i < 1500; i++ {
		if err := writeNoAdd(r, fmt.Sprintf("gen/f%04d.txt", i), fmt.Sprintf("line %d\n", i)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := r.wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		t.Fatalf("AddWithOptions: %v", err)
	}
	h := r.commit("bulk")

	d := r.diff(h)
	if d.FileCount() != 1500 {
		t.Fatalf("FileCount = %d, want 1500", d.FileCount())
	}
	if d.TotalAdded != 1500 {
		t.Errorf("TotalAdded = %d, want 1500", d.TotalAdded)
	}
	if !d.TooLarge(DefaultDiffLimits()) {
		t.Errorf("TooLarge = false, want true")
	}
}

func TestCommitDiff_TooLarge(t *testing.T) {
	limits := DefaultDiffLimits()
	tests := []struct {
		name string
		diff CommitDiff
		want bool
	}{
		{"small", CommitDiff{Files: make([]ChangeStat, 3), TotalAdded: 10}, false},
		{"files", CommitDiff{Files: make([]ChangeStat, 1001)}, true},
		{"additions", CommitDiff{Files: make([]ChangeStat, 1), TotalAdded: 100001}, true},
		{"deletions", CommitDiff{Files: make([]ChangeStat, 1), TotalDeleted: 100001}, true},
		{"at limit", CommitDiff{Files: make([]ChangeStat, 1000), TotalAdded: 100000}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diff.TooLarge(limits); got != tt.want {
				t.Errorf("TooLarge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func writeNoAdd(r *testRepo, path, content string) error {
	f, err := r.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(content)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
