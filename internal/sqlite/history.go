package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/rpggio/deckgen/internal/repository"
)

// HistoryRepository implements repository.HistoryRepository for SQLite
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const runColumns = `
	id, command, deck_path, status,
	total, committed, with_image, without_image, skipped, failed, slides,
	error, started_at, finished_at
`

// CreateRun inserts a new run
func (r *HistoryRepository) CreateRun(ctx context.Context, run *history.Run) error {
	query := `
		INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, runArgs(run)...)
	if err != nil {
		return translateError(err, "create run")
	}
	return nil
}

// UpdateRun stores a run's status, stats and finish time
func (r *HistoryRepository) UpdateRun(ctx context.Context, run *history.Run) error {
	query := `
		UPDATE runs SET
			status = ?, total = ?, committed = ?, with_image = ?, without_image = ?,
			skipped = ?, failed = ?, slides = ?, error = ?, finished_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		run.Status,
		run.Stats.Total,
		run.Stats.Committed,
		run.Stats.WithImage,
		run.Stats.WithoutImage,
		run.Stats.Skipped,
		run.Stats.Failed,
		run.Stats.Slides,
		run.Error,
		nullTime(run.FinishedAt),
		run.ID,
	)
	if err != nil {
		return translateError(err, "update run")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetRun retrieves a run by ID
func (r *HistoryRepository) GetRun(ctx context.Context, id string) (*history.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs matching the given filters, newest first
func (r *HistoryRepository) ListRuns(ctx context.Context, opts history.ListRunsOptions) ([]history.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`

	var args []interface{}
	var conditions []string
	if opts.Command != nil {
		conditions = append(conditions, "command = ?")
		args = append(args, *opts.Command)
	}
	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.DeckPath != "" {
		conditions = append(conditions, "deck_path = ?")
		args = append(args, opts.DeckPath)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY started_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []history.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}
	return runs, nil
}

// LogEntries inserts a run's record outcomes in one transaction
func (r *HistoryRepository) LogEntries(ctx context.Context, runID string, entries []history.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_entries (
			run_id, position, display_name, join_key, state,
			image_bound, slide_index, reason, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		result, err := stmt.ExecContext(ctx,
			runID,
			e.Position,
			e.DisplayName,
			e.JoinKey,
			e.State,
			e.ImageBound,
			e.SlideIndex,
			e.Reason,
			createdAt,
		)
		if err != nil {
			return translateError(err, "log run entry")
		}
		if id, err := result.LastInsertId(); err == nil {
			e.ID = id
		}
		e.RunID = runID
		e.CreatedAt = createdAt
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run entries: %w", err)
	}
	return nil
}

// ListEntries returns a run's entries in roster order
func (r *HistoryRepository) ListEntries(ctx context.Context, runID string) ([]history.Entry, error) {
	query := `
		SELECT
			id, run_id, position, display_name, join_key, state,
			image_bound, slide_index, reason, created_at
		FROM run_entries
		WHERE run_id = ?
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run entries: %w", err)
	}
	defer rows.Close()

	entries := []history.Entry{}
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.Position,
			&e.DisplayName,
			&e.JoinKey,
			&e.State,
			&e.ImageBound,
			&e.SlideIndex,
			&e.Reason,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run entry rows: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*history.Run, error) {
	var run history.Run
	var finishedAt sql.NullTime
	if err := row.Scan(
		&run.ID,
		&run.Command,
		&run.DeckPath,
		&run.Status,
		&run.Stats.Total,
		&run.Stats.Committed,
		&run.Stats.WithImage,
		&run.Stats.WithoutImage,
		&run.Stats.Skipped,
		&run.Stats.Failed,
		&run.Stats.Slides,
		&run.Error,
		&run.StartedAt,
		&finishedAt,
	); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

func runArgs(run *history.Run) []interface{} {
	return []interface{}{
		run.ID,
		run.Command,
		run.DeckPath,
		run.Status,
		run.Stats.Total,
		run.Stats.Committed,
		run.Stats.WithImage,
		run.Stats.WithoutImage,
		run.Stats.Skipped,
		run.Stats.Failed,
		run.Stats.Slides,
		run.Error,
		run.StartedAt,
		nullTime(run.FinishedAt),
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
