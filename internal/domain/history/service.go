package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service handles run ledger operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new history service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// StartRun assigns an ID and start time if missing and records the run as running.
func (s *Service) StartRun(ctx context.Context, run *Run) error {
	if run == nil || run.Command == "" {
		return ErrInvalidInput
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("starting run: %w", err)
	}
	s.logger.Debug("run started", "run_id", run.ID, "command", run.Command)
	return nil
}

// FinishRun stores the run's entries and final state. A run with an Error
// is marked failed, otherwise succeeded.
func (s *Service) FinishRun(ctx context.Context, run *Run, entries []Entry) error {
	if run == nil || run.ID == "" {
		return ErrInvalidInput
	}
	now := time.Now()
	run.FinishedAt = &now
	run.Status = StatusSucceeded
	if run.Error != "" {
		run.Status = StatusFailed
	}
	if len(entries) > 0 {
		for i := range entries {
			entries[i].RunID = run.ID
			if entries[i].CreatedAt.IsZero() {
				entries[i].CreatedAt = now
			}
		}
		if err := s.repo.LogEntries(ctx, run.ID, entries); err != nil {
			return fmt.Errorf("logging run entries: %w", err)
		}
	}
	if err := s.repo.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	s.logger.Debug("run finished", "run_id", run.ID, "status", run.Status)
	return nil
}

// ListRuns lists runs, newest first.
func (s *Service) ListRuns(ctx context.Context, opts ListRunsOptions) ([]Run, error) {
	return s.repo.ListRuns(ctx, opts)
}

// GetRun returns a run with its entries.
func (s *Service) GetRun(ctx context.Context, id string) (*RunDetail, error) {
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing run entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return &RunDetail{Run: *run, Entries: entries}, nil
}
