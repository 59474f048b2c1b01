package mocks

import (
	"context"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/stretchr/testify/mock"
)

// HistoryRepository is a mock for repository.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) CreateRun(ctx context.Context, run *history.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *HistoryRepository) UpdateRun(ctx context.Context, run *history.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *HistoryRepository) GetRun(ctx context.Context, id string) (*history.Run, error) {
	args := m.Called(ctx, id)
	if run, ok := args.Get(0).(*history.Run); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HistoryRepository) ListRuns(ctx context.Context, opts history.ListRunsOptions) ([]history.Run, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]history.Run); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HistoryRepository) LogEntries(ctx context.Context, runID string, entries []history.Entry) error {
	args := m.Called(ctx, runID, entries)
	return args.Error(0)
}

func (m *HistoryRepository) ListEntries(ctx context.Context, runID string) ([]history.Entry, error) {
	args := m.Called(ctx, runID)
	if list, ok := args.Get(0).([]history.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DeckStore is a mock for repository.DeckStore.
type DeckStore struct {
	mock.Mock
}

func (m *DeckStore) Load(path string) (*document.Deck, error) {
	args := m.Called(path)
	if deck, ok := args.Get(0).(*document.Deck); ok {
		return deck, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DeckStore) Save(deck *document.Deck, path string) error {
	args := m.Called(deck, path)
	return args.Error(0)
}

func (m *DeckStore) Copy(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}
