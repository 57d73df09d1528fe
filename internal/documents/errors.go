package documents

import "errors"

var (
	// ErrDuplicatePath signals two corpus files claiming the same path. The
	// corpus identity invariant is violated, so the whole build halts.
	ErrDuplicatePath = errors.New("documents: duplicate path")
)
