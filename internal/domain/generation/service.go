package generation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/deckgen/internal/domain/asset"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/rpggio/deckgen/internal/domain/roster"
)

// Service runs generation against deck files.
type Service struct {
	store    DeckStore
	history  HistoryRecorder
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewService creates a new generation service. recorder may be nil.
func NewService(store DeckStore, recorder HistoryRecorder, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:    store,
		history:  recorder,
		pipeline: NewPipeline(cfg, logger),
		logger:   logger,
	}
}

// GenerateRequest describes a generation run.
type GenerateRequest struct {
	DeckPath   string
	OutputPath string
	RosterPath string
	AssetsDir  string
	// Reset drops every generated slide before generating.
	Reset bool
}

// Generate loads the deck, roster, and assets, appends one slide per valid
// record, and saves the deck to OutputPath (DeckPath when empty). The
// report is returned even when the save fails.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Report, error) {
	records, err := roster.LoadFile(req.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	paths := map[string]string{}
	if req.AssetsDir != "" {
		if paths, err = asset.ScanDir(req.AssetsDir); err != nil {
			return nil, fmt.Errorf("scanning assets: %w", err)
		}
	}
	deck, err := s.store.Load(req.DeckPath)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	s.logger.Info("generating deck",
		"deck", req.DeckPath,
		"records", len(records),
		"assets", len(paths),
		"existing_slides", len(deck.Slides),
	)

	run := s.startRun(ctx, history.CommandGenerate, req.DeckPath)
	if req.Reset && len(deck.Slides) > 1 {
		s.logger.Info("resetting deck", "removed", len(deck.Slides)-1)
		deck.Truncate(1)
	}

	report := s.pipeline.Run(deck, records, asset.NewResolver(paths))
	if run != nil {
		report.RunID = run.ID
	}

	out := req.OutputPath
	if out == "" {
		out = req.DeckPath
	}
	if err := s.store.Save(deck, out); err != nil {
		err = fmt.Errorf("%w: %v", ErrSaveFailed, err)
		s.logger.Error("failed to save deck", "path", out, "error", err)
		s.finishRun(ctx, run, &report, err)
		return &report, err
	}
	s.logger.Info("deck saved", "path", out, "slides", report.Stats.SlidesInDeck)
	s.finishRun(ctx, run, &report, nil)
	return &report, nil
}

// Reset removes every slide but the template and saves the deck. It
// returns the number of slides removed.
func (s *Service) Reset(ctx context.Context, deckPath string) (int, error) {
	deck, err := s.store.Load(deckPath)
	if err != nil {
		return 0, fmt.Errorf("loading deck: %w", err)
	}
	removed := 0
	if len(deck.Slides) > 1 {
		removed = len(deck.Slides) - 1
	}

	run := s.startRun(ctx, history.CommandReset, deckPath)
	deck.Truncate(1)
	report := &Report{Stats: Stats{SlidesInDeck: len(deck.Slides)}}
	if err := s.store.Save(deck, deckPath); err != nil {
		err = fmt.Errorf("%w: %v", ErrSaveFailed, err)
		s.finishRun(ctx, run, report, err)
		return 0, err
	}
	s.logger.Info("deck reset", "path", deckPath, "removed", removed)
	s.finishRun(ctx, run, report, nil)
	return removed, nil
}

func (s *Service) startRun(ctx context.Context, cmd history.Command, deckPath string) *history.Run {
	if s.history == nil {
		return nil
	}
	run := &history.Run{Command: cmd, DeckPath: deckPath}
	if err := s.history.StartRun(ctx, run); err != nil {
		s.logger.Warn("failed to record run start", "error", err)
		return nil
	}
	return run
}

func (s *Service) finishRun(ctx context.Context, run *history.Run, report *Report, runErr error) {
	if s.history == nil || run == nil {
		return
	}
	run.Stats = history.Stats{
		Total:        report.Stats.Total,
		Committed:    report.Stats.Committed,
		WithImage:    report.Stats.WithImage,
		WithoutImage: report.Stats.WithoutImage,
		Skipped:      report.Stats.Skipped,
		Failed:       report.Stats.Failed,
		Slides:       report.Stats.SlidesInDeck,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	entries := make([]history.Entry, 0, len(report.Outcomes))
	for i, o := range report.Outcomes {
		entries = append(entries, history.Entry{
			Position:    i,
			DisplayName: o.Record.DisplayName,
			JoinKey:     o.Record.JoinKey,
			State:       string(o.State),
			ImageBound:  o.ImageBound,
			SlideIndex:  o.SlideIndex,
			Reason:      o.Reason,
		})
	}
	if err := s.history.FinishRun(ctx, run, entries); err != nil {
		s.logger.Warn("failed to record run", "run_id", run.ID, "error", err)
	}
}
