package git

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an object or reference does not resolve.
	ErrNotFound = errors.New("object not found")
	// ErrCorrupt is returned when an object is present but unreadable.
	ErrCorrupt = errors.New("corrupt object")
	// ErrStopWalk may be returned by a Walk callback to end the walk early.
	ErrStopWalk = errors.New("stop walk")
)

// ObjectError describes a failed object lookup.
type ObjectError struct {
	Op   string
	Hash string
	Kind error // ErrNotFound or ErrCorrupt
	Err  error
}

func (e *ObjectError) Error() string {
	if e.Hash == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Hash, e.Err)
}

func (e *ObjectError) Unwrap() error { return e.Err }

// Is matches the error kind so callers can use errors.Is(err, ErrNotFound).
func (e *ObjectError) Is(target error) bool {
	return target == e.Kind
}
