package document

import "errors"

var (
	// ErrNoTemplate indicates the deck has no slides to use as a template.
	ErrNoTemplate = errors.New("deck has no template slide")
	// ErrLayoutNotFound indicates a slide references an unknown layout.
	ErrLayoutNotFound = errors.New("slide layout not found")
	// ErrShapeNotFound indicates the shape is not part of the slide.
	ErrShapeNotFound = errors.New("shape not found on slide")
	// ErrInvalidDeck indicates a deck file that fails structural checks.
	ErrInvalidDeck = errors.New("invalid deck")
)
