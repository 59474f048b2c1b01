package generation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/roster"
)

// Overlay placement and styling.
var (
	OverlayTop    = document.Inches(4.5)
	OverlayHeight = document.Inches(1.2)
	OverlayStyle  = document.TextStyle{
		Bold:       true,
		SizePt:     24,
		Align:      "center",
		Anchor:     "middle",
		Color:      "000000",
		Background: "FFFFFF",
	}
)

// OverlayName is the shape name given to the info grid.
const OverlayName = "Player Info"

// OverlayBuilder renders a record's info grid onto a slide.
type OverlayBuilder struct {
	stripper *Stripper
}

// NewOverlayBuilder creates an OverlayBuilder. Stale tables are found with
// the same rules the stripper uses.
func NewOverlayBuilder(stripper *Stripper) *OverlayBuilder {
	return &OverlayBuilder{stripper: stripper}
}

// Build drops any earlier grid and appends a fresh 2×2 grid spanning
// slideWidth, so it is always the topmost shape.
func (b *OverlayBuilder) Build(slide *document.Slide, rec roster.Record, slideWidth document.EMU) (*document.Shape, error) {
	if slideWidth <= 0 {
		return nil, fmt.Errorf("%w: slide width %d", ErrOverlayFailed, slideWidth)
	}
	for _, t := range slide.Tables() {
		if t.Marker == document.MarkerOverlay || b.stripper.isBottomTable(t) {
			if err := slide.RemoveShape(t); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrOverlayFailed, err)
			}
		}
	}

	half := slideWidth / 2
	cell := func(text string) document.Cell {
		return document.Cell{Text: text, Style: OverlayStyle}
	}
	grid := &document.Shape{
		ID:     uuid.NewString(),
		Name:   OverlayName,
		Kind:   document.KindTable,
		Marker: document.MarkerOverlay,
		Box: document.Box{
			Left:   0,
			Top:    OverlayTop,
			Width:  slideWidth,
			Height: OverlayHeight,
		},
		Table: &document.Table{
			ColumnWidths: []document.EMU{half, slideWidth - half},
			Rows: [][]document.Cell{
				{cell(rec.DisplayName), cell(rec.Age)},
				{cell(rec.Category), cell(rec.JoinKey)},
			},
		},
	}
	slide.InsertShape(grid, document.End)
	return grid, nil
}
