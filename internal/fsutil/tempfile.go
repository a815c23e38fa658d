// Package fsutil holds file helpers shared by the output tree and the cache.
package fsutil

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path"
	"strconv"

	"github.com/go-git/go-billy/v5"
)

const maxTempAttempts = 100

var tempSuffix = func() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}

// CreateTemp creates a new, uniquely named file in dir with mode perm.
// Unlike billy's TempFile, which always uses 0600, the file keeps perm after
// it is renamed into place.
func CreateTemp(fs billy.Filesystem, dir, prefix string, perm os.FileMode) (billy.File, error) {
	for range maxTempAttempts {
		name := path.Join(dir, prefix+tempSuffix())
		f, err := fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("create temp file in %s: too many collisions", dir)
}
