package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Diff computes the per-file statistics of a commit against its first
// parent, or against the empty tree for a root commit. Any failure aborts the
// whole diff.
func (r *Repository) Diff(c *CommitRecord) (*CommitDiff, error) {
	tree, err := r.commitTree(c.Hash)
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if c.HasParent() {
		parentTree, err = r.commitTree(c.ParentHash)
		if err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, objectError("diff tree", c.Hash, err)
	}

	entries, err := classifyChanges(dropSubmodules(changes))
	if err != nil {
		return nil, objectError("diff tree", c.Hash, err)
	}

	diff := &CommitDiff{Files: make([]ChangeStat, 0, len(entries))}
	for _, e := range entries {
		stat, err := r.changeStat(e)
		if err != nil {
			return nil, objectError(fmt.Sprintf("diff %s", e.change), c.Hash, err)
		}
		diff.Files = append(diff.Files, stat)
		diff.TotalAdded += stat.Added
		diff.TotalDeleted += stat.Deleted
	}
	return diff, nil
}

func (r *Repository) changeStat(e classifiedChange) (ChangeStat, error) {
	stat := ChangeStat{
		OldPath: e.change.From.Name,
		NewPath: e.change.To.Name,
		Kind:    e.kind,
	}

	patch, err := e.change.Patch()
	if err != nil {
		return stat, err
	}

	for _, fp := range patch.FilePatches() {
		if fp.IsBinary() {
			stat.Binary = true
			continue
		}
		lines := chunkLines(fp.Chunks())
		added, deleted := countOps(lines)
		stat.Added += added
		stat.Deleted += deleted
		stat.Hunks = append(stat.Hunks, buildHunks(lines, r.opts.ContextLines)...)
	}
	return stat, nil
}
