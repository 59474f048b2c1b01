package roster

import "errors"

var (
	// ErrInvalidJoinKey indicates an empty, non-numeric, or placeholder join key.
	ErrInvalidJoinKey = errors.New("invalid join key")
	// ErrUnsupportedFormat indicates a roster file type the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported roster format")
)
