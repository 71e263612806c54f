package delta

import "errors"

// Domain errors for the delta package.
var (
	// ErrNoReference is returned when delta arithmetic is attempted
	// without a usable (non-nil after filtering) reference value. The
	// read and set paths establish the reference first, so hitting this
	// signals a broken filter or a cleared cache mid-operation rather
	// than a normal runtime condition.
	ErrNoReference = errors.New("delta: no reference value cached")
)
