package repository

import (
	"context"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/history"
)

// HistoryRepository manages run ledger persistence
type HistoryRepository interface {
	CreateRun(ctx context.Context, run *history.Run) error
	UpdateRun(ctx context.Context, run *history.Run) error
	GetRun(ctx context.Context, id string) (*history.Run, error)
	ListRuns(ctx context.Context, opts history.ListRunsOptions) ([]history.Run, error)
	LogEntries(ctx context.Context, runID string, entries []history.Entry) error
	ListEntries(ctx context.Context, runID string) ([]history.Entry, error)
}

// DeckStore manages deck file persistence
type DeckStore interface {
	Load(path string) (*document.Deck, error)
	Save(deck *document.Deck, path string) error
	Copy(src, dst string) error
}
