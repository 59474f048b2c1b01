package generation

import (
	"strings"
	"unicode"

	"github.com/rpggio/deckgen/internal/document"
)

// Stripper removes leftover per-record content from a freshly cloned slide.
//
// Shapes carrying the overlay marker are always removed. Unmarked shapes
// are judged heuristically: tables in the bottom region, and text holding
// a field label or a phone-number-sized run of digits. Photo-marked
// pictures are never touched; the binder replaces them.
type Stripper struct {
	cfg Config
}

// NewStripper creates a Stripper.
func NewStripper(cfg Config) *Stripper {
	tokens := make([]string, 0, len(cfg.LabelTokens))
	for _, tok := range cfg.LabelTokens {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	cfg.LabelTokens = tokens
	return &Stripper{cfg: cfg}
}

// Strip removes stale top-level shapes and returns them.
func (s *Stripper) Strip(slide *document.Slide) []*document.Shape {
	var removed []*document.Shape
	kept := slide.Shapes[:0]
	for _, sh := range slide.Shapes {
		if s.IsStale(sh) {
			removed = append(removed, sh)
			continue
		}
		kept = append(kept, sh)
	}
	for i := len(kept); i < len(slide.Shapes); i++ {
		slide.Shapes[i] = nil
	}
	slide.Shapes = kept
	return removed
}

// IsStale reports whether a top-level shape is leftover record content.
func (s *Stripper) IsStale(sh *document.Shape) bool {
	switch sh.Marker {
	case document.MarkerOverlay:
		return true
	case document.MarkerPhoto:
		return false
	}
	if sh.Kind == document.KindTable {
		return s.isBottomTable(sh)
	}
	if sh.HasText() {
		return s.isRecordText(sh.Text)
	}
	return false
}

func (s *Stripper) isBottomTable(sh *document.Shape) bool {
	return sh.Box.Top > s.cfg.StaleTableTop
}

func (s *Stripper) isRecordText(text string) bool {
	lower := strings.ToLower(text)
	for _, tok := range s.cfg.LabelTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	if s.cfg.DigitThreshold <= 0 {
		return false
	}
	digits := 0
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= s.cfg.DigitThreshold
}
