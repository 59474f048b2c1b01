package reorder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/history"
)

// DefaultBackupSuffix is appended to the deck path to name the snapshot.
const DefaultBackupSuffix = ".backup"

// Service sorts a persisted deck by rebuilding it from a snapshot.
type Service struct {
	store        DeckStore
	history      HistoryRecorder
	backupSuffix string
	logger       *slog.Logger
}

// NewService creates a new reorder service. recorder may be nil; an empty
// suffix selects DefaultBackupSuffix.
func NewService(store DeckStore, recorder HistoryRecorder, backupSuffix string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if backupSuffix == "" {
		backupSuffix = DefaultBackupSuffix
	}
	return &Service{
		store:        store,
		history:      recorder,
		backupSuffix: backupSuffix,
		logger:       logger,
	}
}

// Result describes a completed reorder.
type Result struct {
	RunID      string `json:"run_id,omitempty"`
	BackupPath string `json:"backup_path"`
	Order      []Key  `json:"order"`
	Slides     int    `json:"slides"`
}

// BackupPath returns where the snapshot of deckPath is written.
func (s *Service) BackupPath(deckPath string) string {
	return deckPath + s.backupSuffix
}

// Reorder sorts the generated slides of the deck at deckPath by overlay
// name. The deck is snapshotted first and every slide is re-cloned from
// the snapshot. If the final save fails the live file is restored from
// the snapshot byte for byte.
func (s *Service) Reorder(ctx context.Context, deckPath string) (*Result, error) {
	backup := s.BackupPath(deckPath)
	if err := s.store.Copy(deckPath, backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	s.logger.Info("deck backed up", "path", deckPath, "backup", backup)

	snapshot, err := s.store.Load(backup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	live, err := s.store.Load(deckPath)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	run := s.startRun(ctx, deckPath)
	result := &Result{BackupPath: backup}
	if run != nil {
		result.RunID = run.ID
	}

	keys := Keys(snapshot)
	Sort(keys)
	result.Order = keys

	live.Truncate(1)
	for _, k := range keys {
		slide, err := document.CopyInto(live, snapshot.Slides[k.Index])
		if err != nil {
			err = fmt.Errorf("%w: slide %d: %v", ErrRebuildFailed, k.Index, err)
			s.finishRun(ctx, run, result, err)
			return nil, err
		}
		live.AppendSlide(slide)
	}
	result.Slides = len(live.Slides)

	if err := s.store.Save(live, deckPath); err != nil {
		s.logger.Error("failed to save reordered deck, restoring backup", "path", deckPath, "error", err)
		err = s.restore(backup, deckPath, err)
		s.finishRun(ctx, run, result, err)
		return nil, err
	}
	s.logger.Info("deck reordered", "path", deckPath, "slides", result.Slides)
	s.finishRun(ctx, run, result, nil)
	return result, nil
}

func (s *Service) restore(backup, deckPath string, saveErr error) error {
	if err := s.store.Copy(backup, deckPath); err != nil {
		s.logger.Error("failed to restore deck from backup", "backup", backup, "error", err)
		return fmt.Errorf("%w: save: %v; restore: %v", ErrRestoreFailed, saveErr, err)
	}
	s.logger.Info("deck restored from backup", "path", deckPath)
	return fmt.Errorf("%w: %v", ErrSaveFailed, saveErr)
}

func (s *Service) startRun(ctx context.Context, deckPath string) *history.Run {
	if s.history == nil {
		return nil
	}
	run := &history.Run{Command: history.CommandReorder, DeckPath: deckPath}
	if err := s.history.StartRun(ctx, run); err != nil {
		s.logger.Warn("failed to record run start", "error", err)
		return nil
	}
	return run
}

func (s *Service) finishRun(ctx context.Context, run *history.Run, result *Result, runErr error) {
	if s.history == nil || run == nil {
		return
	}
	run.Stats = history.Stats{Total: len(result.Order), Slides: result.Slides}
	var entries []history.Entry
	if runErr != nil {
		run.Error = runErr.Error()
	} else {
		run.Stats.Committed = len(result.Order)
		for i, k := range result.Order {
			entries = append(entries, history.Entry{
				Position:    i,
				DisplayName: k.Name,
				State:       "COMMITTED",
				SlideIndex:  i + 1,
			})
		}
	}
	if err := s.history.FinishRun(ctx, run, entries); err != nil {
		s.logger.Warn("failed to record run", "run_id", run.ID, "error", err)
	}
}
