package asset

import "errors"

var (
	// ErrUnreadable indicates image bytes whose dimensions cannot be decoded.
	ErrUnreadable = errors.New("asset image unreadable")
	// ErrInvalidDimensions indicates a decoded image with a zero side.
	ErrInvalidDimensions = errors.New("asset image has invalid dimensions")
)
