package generation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/asset"
	"github.com/rpggio/deckgen/internal/domain/roster"
)

// Pipeline turns records into committed slides, one at a time.
type Pipeline struct {
	stripper *Stripper
	binder   *Binder
	overlay  *OverlayBuilder
	logger   *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stripper := NewStripper(cfg)
	return &Pipeline{
		stripper: stripper,
		binder:   NewBinder(logger),
		overlay:  NewOverlayBuilder(stripper),
		logger:   logger,
	}
}

// Run processes every record against deck and aggregates the outcomes.
// Per-record failures are reported in the outcomes, never returned.
func (p *Pipeline) Run(deck *document.Deck, records []roster.Record, assets AssetResolver) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(records))}
	for _, rec := range records {
		out := p.Process(deck, rec, assets)
		report.Outcomes = append(report.Outcomes, out)
		report.Stats.add(out)
	}
	report.Stats.SlidesInDeck = len(deck.Slides)
	p.logger.Info("generation finished",
		"total", report.Stats.Total,
		"with_image", report.Stats.WithImage,
		"without_image", report.Stats.WithoutImage,
		"skipped", report.Stats.Skipped,
		"failed", report.Stats.Failed,
	)
	return report
}

// Process takes one record from START to a terminal state. The deck is
// only mutated on commit.
func (p *Pipeline) Process(deck *document.Deck, rec roster.Record, assets AssetResolver) Outcome {
	rec.JoinKey = strings.TrimSpace(rec.JoinKey)
	log := p.logger.With("record", rec.Label(), "join_key", rec.JoinKey)

	if err := roster.ValidateJoinKey(rec.JoinKey); err != nil {
		log.Debug("skipping record", "error", err)
		return skipped(rec, err)
	}

	slide, err := CloneTemplate(deck)
	if err != nil {
		log.Error("clone failed", "error", err)
		return failed(rec, err)
	}

	if removed := p.stripper.Strip(slide); len(removed) > 0 {
		log.Debug("stripped stale shapes", "count", len(removed))
	}

	out := Outcome{Record: rec, State: StateCommitted}
	if bindErr := p.bind(slide, rec.JoinKey, assets); bindErr != nil {
		log.Warn("slide has no photo", "error", bindErr)
		out.Err = bindErr
		out.Reason = bindErr.Error()
	} else {
		out.ImageBound = true
	}

	if _, err := p.overlay.Build(slide, rec, deck.Width); err != nil {
		log.Error("overlay failed", "error", err)
		out.OverlayErr = err
	}

	deck.AppendSlide(slide)
	out.SlideIndex = len(deck.Slides) - 1
	log.Info("slide committed", "index", out.SlideIndex, "image", out.ImageBound)
	return out
}

func (p *Pipeline) bind(slide *document.Slide, key string, assets AssetResolver) error {
	if assets == nil {
		return ErrAssetNotFound
	}
	a, ok := assets.Resolve(key)
	if !ok {
		return ErrAssetNotFound
	}
	if _, err := p.binder.Bind(slide, a); err != nil {
		if errors.Is(err, document.ErrShapeNotFound) {
			return fmt.Errorf("%w: %v", ErrNoPhotoSlot, err)
		}
		return err
	}
	return nil
}

var _ AssetResolver = (*asset.Resolver)(nil)
