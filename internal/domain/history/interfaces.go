package history

import "context"

// Repository provides persistence operations for the run ledger.
type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, opts ListRunsOptions) ([]Run, error)
	LogEntries(ctx context.Context, runID string, entries []Entry) error
	ListEntries(ctx context.Context, runID string) ([]Entry, error)
}
