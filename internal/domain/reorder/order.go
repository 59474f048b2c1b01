package reorder

import (
	"sort"
	"strings"

	"github.com/rpggio/deckgen/internal/document"
)

// Key is a generated slide's position in the snapshot and its sort name.
type Key struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Keys reads the overlay name of every slide after the template.
func Keys(deck *document.Deck) []Key {
	if len(deck.Slides) < 2 {
		return nil
	}
	keys := make([]Key, 0, len(deck.Slides)-1)
	for i, s := range deck.Slides[1:] {
		keys = append(keys, Key{Index: i + 1, Name: document.OverlayName(s)})
	}
	return keys
}

// Sort orders keys by name, ignoring case. Unnamed slides go last; ties
// keep their snapshot order.
func Sort(keys []Key) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i].Name, keys[j].Name
		if (a == "") != (b == "") {
			return b == ""
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
}
