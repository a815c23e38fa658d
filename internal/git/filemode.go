package git

import (
	"fmt"
	"strconv"
)

// FileMode is a Git file mode as an octal value.
type FileMode uint32

const (
	FileModeEmpty     FileMode = 0
	FileModeDir       FileMode = 0040000
	FileModeRegular   FileMode = 0100644
	FileModeExec      FileMode = 0100755
	FileModeSymlink   FileMode = 0120000
	FileModeSubmodule FileMode = 0160000
)

const (
	modeTypeMask = 0170000
	modeFifo     = 0010000
	modeChar     = 0020000
	modeDir      = 0040000
	modeBlock    = 0060000
	modeRegular  = 0100000
	modeSymlink  = 0120000
	modeSocket   = 0140000
)

// IsFile returns true if the mode represents a regular file or symlink.
func (m FileMode) IsFile() bool {
	return m == FileModeRegular || m == FileModeExec || m == FileModeSymlink
}

// IsSymlink reports whether the mode is a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m&modeTypeMask == modeSymlink
}

// String renders the mode the way ls -l does, e.g. "-rw-r--r--".
func (m FileMode) String() string {
	b := []byte("----------")
	switch m & modeTypeMask {
	case modeRegular:
		b[0] = '-'
	case modeBlock:
		b[0] = 'b'
	case modeChar:
		b[0] = 'c'
	case modeDir:
		b[0] = 'd'
	case modeFifo:
		b[0] = 'p'
	case modeSymlink:
		b[0] = 'l'
	case modeSocket:
		b[0] = 's'
	default:
		b[0] = '?'
	}

	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if m&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		}
	}

	if m&04000 != 0 {
		b[3] = 's'
	}
	if m&02000 != 0 {
		b[6] = 's'
	}
	if m&01000 != 0 {
		b[9] = 't'
	}
	return string(b)
}

// ParseFileMode parses an octal file mode string (e.g. "100644", "120000", "000000").
func ParseFileMode(s string) (FileMode, error) {
	if s == "" {
		return FileModeEmpty, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return FileModeEmpty, fmt.Errorf("parse file mode %q: %w", s, err)
	}
	return FileMode(v), nil
}
