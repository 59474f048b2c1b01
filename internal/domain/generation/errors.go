package generation

import (
	"errors"

	"github.com/rpggio/deckgen/internal/domain/roster"
)

var (
	// ErrInvalidJoinKey indicates a record skipped for an unusable join key.
	ErrInvalidJoinKey = roster.ErrInvalidJoinKey
	// ErrAssetNotFound indicates no asset is mapped to the record's join key.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrUnsupportedAssetFormat indicates an asset extension outside the allow-list.
	ErrUnsupportedAssetFormat = errors.New("unsupported asset format")
	// ErrAssetUnreadable indicates the asset file could not be read.
	ErrAssetUnreadable = errors.New("asset unreadable")
	// ErrNoPhotoSlot indicates the slide has no picture to replace.
	ErrNoPhotoSlot = errors.New("no photo slot on slide")
	// ErrInvalidSlot indicates a photo slot with a zero-sized box.
	ErrInvalidSlot = errors.New("photo slot has no area")
	// ErrEmptyImagePayload indicates the embedded image has no bytes.
	ErrEmptyImagePayload = errors.New("embedded image payload is empty")
	// ErrCloneFailed indicates the template could not be cloned.
	ErrCloneFailed = errors.New("template clone failed")
	// ErrOverlayFailed indicates the info overlay could not be built.
	ErrOverlayFailed = errors.New("info overlay failed")
	// ErrSaveFailed indicates the deck could not be persisted.
	ErrSaveFailed = errors.New("deck save failed")
)
