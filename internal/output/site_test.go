package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

func TestSite_WriteFileIsWorldReadable(t *testing.T) {
	root := t.TempDir()
	site := NewSite(osfs.New(root))
	if err := site.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	for _, name := range []string{LogPage, CommitPage(hashOf('a'))} {
		err := site.WriteFile(name, func(w io.Writer) error {
			_, err := fmt.Fprint(w, "<html></html>\n")
			return err
		})
		if err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != 0o644 {
			t.Errorf("%s mode = %v, want -rw-r--r--", name, got)
		}
	}
}

func TestSite_WriteFileFailureLeavesNothing(t *testing.T) {
	fs := memfs.New()
	site := NewSite(fs)
	boom := errors.New("boom")

	err := site.WriteFile(LogPage, func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	entries, err := fs.ReadDir(".")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("left behind %d entries, first %q", len(entries), entries[0].Name())
	}
}
