package git

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// emptyBlobHash is the id of the zero-length blob. Empty files never pair
// as renames or copies.
var emptyBlobHash = plumbing.ComputeHash(plumbing.BlobObject, nil)

// contentKey identifies pairable content. A symlink never pairs with a
// regular file holding the same bytes.
type contentKey struct {
	hash    plumbing.Hash
	symlink bool
}

func keyOf(e object.TreeEntry) contentKey {
	return contentKey{hash: e.Hash, symlink: isSymlink(e.Mode)}
}

type classifiedChange struct {
	change *object.Change
	kind   ChangeKind
}

// classifyChanges turns the raw tree diff into typed deltas. Deleted and
// added blobs with identical content are merged into one rename; an added
// blob identical to the old side of a modified file, or to a deleted file
// already used as a rename source, becomes a copy. Merged deltas take the
// position of the insertion; everything else keeps the diff order.
func classifyChanges(changes object.Changes) ([]classifiedChange, error) {
	actions := make([]merkletrie.Action, len(changes))
	deletedByKey := make(map[contentKey][]int)
	modifiedByKey := make(map[contentKey]int)

	for i, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return nil, err
		}
		actions[i] = action

		switch action {
		case merkletrie.Delete:
			if pairable(ch.From.TreeEntry) {
				k := keyOf(ch.From.TreeEntry)
				deletedByKey[k] = append(deletedByKey[k], i)
			}
		case merkletrie.Modify:
			if pairable(ch.From.TreeEntry) {
				k := keyOf(ch.From.TreeEntry)
				if _, ok := modifiedByKey[k]; !ok {
					modifiedByKey[k] = i
				}
			}
		}
	}

	kinds := make([]ChangeKind, len(changes))
	sourceOf := make(map[int]int)
	consumed := make(map[int]bool)

	for i, ch := range changes {
		switch actions[i] {
		case merkletrie.Delete:
			kinds[i] = ChangeKindDeleted
		case merkletrie.Modify:
			kinds[i] = ChangeKindModified
			if isSymlink(ch.From.TreeEntry.Mode) != isSymlink(ch.To.TreeEntry.Mode) {
				kinds[i] = ChangeKindTypeChanged
			}
		case merkletrie.Insert:
			kinds[i] = ChangeKindAdded
			if !pairable(ch.To.TreeEntry) {
				continue
			}
			k := keyOf(ch.To.TreeEntry)
			sources := deletedByKey[k]
			if j, ok := firstUnconsumed(sources, consumed); ok {
				consumed[j] = true
				sourceOf[i] = j
				kinds[i] = ChangeKindRenamed
				continue
			}
			if len(sources) > 0 {
				sourceOf[i] = sources[0]
				kinds[i] = ChangeKindCopied
				continue
			}
			if j, ok := modifiedByKey[k]; ok {
				sourceOf[i] = j
				kinds[i] = ChangeKindCopied
			}
		}
	}

	out := make([]classifiedChange, 0, len(changes))
	for i, ch := range changes {
		if consumed[i] {
			continue
		}
		if j, ok := sourceOf[i]; ok {
			merged := &object.Change{From: changes[j].From, To: ch.To}
			out = append(out, classifiedChange{change: merged, kind: kinds[i]})
			continue
		}
		out = append(out, classifiedChange{change: ch, kind: kinds[i]})
	}
	return out, nil
}

// dropSubmodules removes gitlink entries from a tree diff.
func dropSubmodules(changes object.Changes) object.Changes {
	out := changes[:0:0]
	for _, ch := range changes {
		if ch.From.TreeEntry.Mode == filemode.Submodule || ch.To.TreeEntry.Mode == filemode.Submodule {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func pairable(e object.TreeEntry) bool {
	return e.Mode.IsFile() && e.Hash != emptyBlobHash
}

func isSymlink(m filemode.FileMode) bool {
	return m == filemode.Symlink
}

func firstUnconsumed(ids []int, consumed map[int]bool) (int, bool) {
	for _, id := range ids {
		if !consumed[id] {
			return id, true
		}
	}
	return 0, false
}
