package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const hashA = "1111111111111111111111111111111111111111"
const hashB = "2222222222222222222222222222222222222222"

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantCursor string
		wantBody   string
		wantErr    bool
	}{
		{"empty", "", "", "", false},
		{"cursor only", hashA + "\n", hashA, "", false},
		{"cursor and body", hashA + "\n<tr>1</tr>\n<tr>2</tr>\n", hashA, "<tr>1</tr>\n<tr>2</tr>\n", false},
		{"sha256 cursor", strings.Repeat("ab", 32) + "\nx\n", strings.Repeat("ab", 32), "x\n", false},
		{"garbage", "not a hash\n<tr></tr>\n", "", "", true},
		{"short hash", "abc123\n", "", "", true},
		{"no newline", hashA, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.data))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.wantCursor, c.Cursor)
			assert.Equal(t, tt.wantBody, string(c.Body))
			assert.Equal(t, tt.wantCursor != "", c.HasCursor())
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	c, err := Load(memfs.New(), "cache")
	require.NoError(t, err)
	assert.False(t, c.HasCursor())
	assert.Empty(t, c.Body)
}

func TestRecords(t *testing.T) {
	c := &Cache{Cursor: hashA, Body: []byte("a\nb\nc\n")}
	recs := c.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "b\n", string(recs[1]))

	assert.Nil(t, (&Cache{}).Records())
}

func TestWriter_CommitReplacesAtomically(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "state/cache", []byte(hashA+"\nold\n"), 0o644))

	old, err := Load(fs, "state/cache")
	require.NoError(t, err)

	w, err := Create(fs, "state/cache")
	require.NoError(t, err)
	require.NoError(t, w.WriteCursor(hashB))
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	_, err = w.Write(old.Body)
	require.NoError(t, err)

	// the old cache is untouched until Commit
	before, err := util.ReadFile(fs, "state/cache")
	require.NoError(t, err)
	assert.Equal(t, hashA+"\nold\n", string(before))

	require.NoError(t, w.Commit())

	after, err := util.ReadFile(fs, "state/cache")
	require.NoError(t, err)
	assert.Equal(t, hashB+"\nnew\nold\n", string(after))

	entries, err := fs.ReadDir("state")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriter_CommitOnDiskIsWorldReadable(t *testing.T) {
	root := t.TempDir()
	fs := osfs.New(root)

	w, err := Create(fs, "site.cache")
	require.NoError(t, err)
	require.NoError(t, w.WriteCursor(hashA))
	require.NoError(t, w.Commit())

	info, err := os.Stat(filepath.Join(root, "site.cache"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriter_AbortKeepsOldCache(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "cache", []byte(hashA+"\nold\n"), 0o644))

	w, err := Create(fs, "cache")
	require.NoError(t, err)
	require.NoError(t, w.WriteCursor(hashB))
	require.NoError(t, w.Abort())
	require.NoError(t, w.Commit(), "Commit after Abort is a no-op")

	data, err := util.ReadFile(fs, "cache")
	require.NoError(t, err)
	assert.Equal(t, hashA+"\nold\n", string(data))

	entries, err := fs.ReadDir(".")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad_MalformedIsNotFatal(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "cache", []byte("garbage\nrows\n"), 0o644))

	c, err := Load(fs, "cache")
	assert.True(t, errors.Is(err, ErrMalformed))
	require.NotNil(t, c)
	assert.False(t, c.HasCursor())
}

func TestRapidParse_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cursor := rapid.StringMatching(`[0-9a-f]{40}`).Draw(t, "cursor")
		body := rapid.StringMatching(`(<tr>[a-z ]{0,10}</tr>\n){0,5}`).Draw(t, "body")

		c, err := Parse([]byte(cursor + "\n" + body))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if c.Cursor != cursor || string(c.Body) != body {
			t.Fatalf("Parse = (%q, %q), want (%q, %q)", c.Cursor, c.Body, cursor, body)
		}
		if len(c.Records()) != strings.Count(body, "\n") {
			t.Fatalf("Records() = %d, want %d", len(c.Records()), strings.Count(body, "\n"))
		}
	})
}
