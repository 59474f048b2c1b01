package history

import "errors"

var (
	// ErrInvalidInput indicates a missing run or entry.
	ErrInvalidInput = errors.New("invalid input")
)
