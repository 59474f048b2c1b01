package generation

import (
	"context"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/asset"
	"github.com/rpggio/deckgen/internal/domain/history"
)

// AssetResolver looks up the canonical asset for a join key.
type AssetResolver interface {
	Resolve(key string) (asset.Asset, bool)
}

// DeckStore persists decks.
type DeckStore interface {
	Load(path string) (*document.Deck, error)
	Save(deck *document.Deck, path string) error
}

// HistoryRecorder records runs in the ledger.
type HistoryRecorder interface {
	StartRun(ctx context.Context, run *history.Run) error
	FinishRun(ctx context.Context, run *history.Run, entries []history.Entry) error
}
