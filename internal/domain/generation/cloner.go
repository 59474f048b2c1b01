package generation

import (
	"fmt"

	"github.com/rpggio/deckgen/internal/document"
)

// CloneTemplate creates a detached deep copy of the deck's template slide.
// The copy is not part of the deck until it is committed.
func CloneTemplate(deck *document.Deck) (*document.Slide, error) {
	tmpl, err := deck.Template()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}
	slide, err := document.CopyInto(deck, tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}
	return slide, nil
}
