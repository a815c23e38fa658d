package git

import (
	"path"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tree lists every blob and submodule reachable from the commit's tree in
// tree order, descending into subdirectories.
func (r *Repository) Tree(commitHash string) ([]TreeEntry, error) {
	tree, err := r.commitTree(commitHash)
	if err != nil {
		return nil, err
	}
	var entries []TreeEntry
	if err := r.walkTree(tree, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) walkTree(tree *object.Tree, prefix string, out *[]TreeEntry) error {
	for _, e := range tree.Entries {
		p := path.Join(prefix, e.Name)
		switch e.Mode {
		case filemode.Dir:
			sub, err := r.repo.TreeObject(e.Hash)
			if err != nil {
				return objectError("read tree "+p, e.Hash.String(), err)
			}
			if err := r.walkTree(sub, p, out); err != nil {
				return err
			}
		case filemode.Submodule:
			*out = append(*out, TreeEntry{Path: p, Mode: FileMode(e.Mode), Hash: e.Hash.String(), Kind: EntrySubmodule})
		default:
			*out = append(*out, TreeEntry{Path: p, Mode: FileMode(e.Mode), Hash: e.Hash.String(), Kind: EntryBlob})
		}
	}
	return nil
}
