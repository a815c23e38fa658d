package build

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/masmgr/stagit-go/internal/git"
	"github.com/masmgr/stagit-go/internal/output"
)

// ReadRepoInfo derives the repository name from its directory and reads the
// optional description and url files from the repository or its git dir.
func ReadRepoInfo(repoPath, gitDir string) (output.RepoInfo, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return output.RepoInfo{}, err
	}
	name := filepath.Base(abs)
	info := output.RepoInfo{
		Name:         name,
		StrippedName: strings.TrimSuffix(name, ".git"),
	}

	dirs := []string{repoPath, filepath.Join(repoPath, ".git")}
	if gitDir != "" {
		dirs = append(dirs, gitDir)
	}
	if info.Description, err = firstLine(dirs, "description"); err != nil {
		return info, err
	}
	if info.CloneURL, err = firstLine(dirs, "url"); err != nil {
		return info, err
	}
	return info, nil
}

// firstLine returns the first line of the first existing file named name in
// dirs.
func firstLine(dirs []string, name string) (string, error) {
	for _, dir := range dirs {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		sc := bufio.NewScanner(f)
		line := ""
		if sc.Scan() {
			line = strings.TrimSpace(sc.Text())
		}
		err = sc.Err()
		f.Close()
		return line, err
	}
	return "", nil
}

// detectSpecialFiles fills in README, license and submodule paths found in
// the tree at head.
func detectSpecialFiles(p git.Provider, head string, info *output.RepoInfo, readmes, licenses []string) {
	if head == "" {
		return
	}
	if findFile(p, head, []string{".gitmodules"}) != "" {
		info.Submodules = ".gitmodules"
	}
	info.License = findFile(p, head, licenses)
	info.Readme = findFile(p, head, readmes)
}

func findFile(p git.Provider, head string, candidates []string) string {
	for _, name := range candidates {
		if _, err := p.FileAt(head, name); err == nil {
			return name
		}
	}
	return ""
}
