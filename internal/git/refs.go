package git

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// maxTagDepth bounds annotated-tag chains when peeling.
const maxTagDepth = 32

// References enumerates branches and tags, resolves each to a commit and
// returns them sorted. References that do not resolve to a commit are
// dropped.
func (r *Repository) References() ([]ReferenceEntry, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()

	var entries []ReferenceEntry
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		var kind RefKind
		switch {
		case name.IsBranch():
			kind = RefBranch
		case name.IsTag():
			kind = RefTag
		default:
			return nil
		}

		commit, err := r.resolveReference(ref)
		if err != nil {
			slog.Debug("skipping reference", "ref", name.String(), "error", err)
			return nil
		}
		entries = append(entries, ReferenceEntry{
			Name:     name.Short(),
			FullName: name.String(),
			Kind:     kind,
			Commit:   commit,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	SortReferences(entries)
	return entries, nil
}

func (r *Repository) resolveReference(ref *plumbing.Reference) (*CommitRecord, error) {
	if ref.Type() == plumbing.SymbolicReference {
		resolved, err := r.repo.Reference(ref.Name(), true)
		if err != nil {
			return nil, objectError("resolve reference", ref.Name().String(), err)
		}
		ref = resolved
	}
	h, err := r.peelToCommit(ref.Hash())
	if err != nil {
		return nil, err
	}
	return r.Commit(h.String())
}

// peelToCommit follows annotated tags until a commit is reached.
func (r *Repository) peelToCommit(h plumbing.Hash) (plumbing.Hash, error) {
	for i := 0; i < maxTagDepth; i++ {
		if _, err := r.repo.CommitObject(h); err == nil {
			return h, nil
		}
		tag, err := r.repo.TagObject(h)
		if err != nil {
			return plumbing.ZeroHash, objectError("peel", h.String(), err)
		}
		switch tag.TargetType {
		case plumbing.CommitObject, plumbing.TagObject:
			h = tag.Target
		default:
			return plumbing.ZeroHash, &ObjectError{
				Op: "peel", Hash: h.String(), Kind: ErrNotFound,
				Err: fmt.Errorf("tag points at a %s", tag.TargetType),
			}
		}
	}
	return plumbing.ZeroHash, &ObjectError{Op: "peel", Hash: h.String(), Kind: ErrCorrupt, Err: errors.New("tag chain too deep")}
}

// SortReferences orders branches before tags, then newer author time first,
// then by name.
func SortReferences(entries []ReferenceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return referenceLess(entries[i], entries[j])
	})
}

func referenceLess(a, b ReferenceEntry) bool {
	if a.Kind != b.Kind {
		return a.Kind == RefBranch
	}
	at, bt := a.Commit.Author.When.Unix(), b.Commit.Author.When.Unix()
	if at != bt {
		return at > bt
	}
	return a.Name < b.Name
}
