package runner

import (
	"errors"
	"fmt"
)

// ErrBrokenChildIO classifies any failure to operate a child's stdio pipes.
// It signals a harness or OS level defect, never a game crash, so callers
// abort the whole campaign when they see it.
var ErrBrokenChildIO = errors.New("can't communicate with child")

// ChildIOError carries the seed and pipe operation behind a broken child
// conversation. errors.Is(err, ErrBrokenChildIO) matches it.
type ChildIOError struct {
	Seed uint32
	Op   string
	Err  error
}

func (e *ChildIOError) Error() string {
	return fmt.Sprintf("runner: can't communicate with child (seed %d, %s): %v", e.Seed, e.Op, e.Err)
}

func (e *ChildIOError) Unwrap() error { return e.Err }

// Is lets the sentinel match without exposing the concrete type.
func (e *ChildIOError) Is(target error) bool { return target == ErrBrokenChildIO }
