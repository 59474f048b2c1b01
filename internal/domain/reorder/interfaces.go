package reorder

import (
	"context"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/history"
)

// DeckStore persists decks and copies deck files.
type DeckStore interface {
	Load(path string) (*document.Deck, error)
	Save(deck *document.Deck, path string) error
	Copy(src, dst string) error
}

// HistoryRecorder records runs in the ledger.
type HistoryRecorder interface {
	StartRun(ctx context.Context, run *history.Run) error
	FinishRun(ctx context.Context, run *history.Run, entries []history.Entry) error
}
