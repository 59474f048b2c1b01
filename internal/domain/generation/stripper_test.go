package generation_test

import (
	"testing"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/stretchr/testify/require"
)

func TestStripper_IsStale(t *testing.T) {
	bottom := document.Inches(5)
	top := document.Inches(1)
	tests := []struct {
		name  string
		cfg   func(*generation.Config)
		shape *document.Shape
		stale bool
	}{
		{
			name:  "marked overlay anywhere",
			shape: &document.Shape{Kind: document.KindTable, Marker: document.MarkerOverlay, Box: document.Box{Top: top}, Table: &document.Table{}},
			stale: true,
		},
		{
			name:  "unmarked bottom table",
			shape: &document.Shape{Kind: document.KindTable, Box: document.Box{Top: bottom}, Table: &document.Table{}},
			stale: true,
		},
		{
			name:  "unmarked table in the upper region",
			shape: &document.Shape{Kind: document.KindTable, Box: document.Box{Top: top}, Table: &document.Table{}},
		},
		{
			name:  "label token any case",
			shape: &document.Shape{Kind: document.KindText, Text: "NAME: Kiran"},
			stale: true,
		},
		{
			name:  "phone label",
			shape: &document.Shape{Kind: document.KindText, Text: "Phone: n/a"},
			stale: true,
		},
		{
			name:  "ten digits",
			shape: &document.Shape{Kind: document.KindText, Text: "call 97408-34449"},
			stale: true,
		},
		{
			name:  "nine digits",
			shape: &document.Shape{Kind: document.KindText, Text: "call 974083444"},
		},
		{
			name:  "digit heuristic disabled",
			cfg:   func(c *generation.Config) { c.DigitThreshold = 0 },
			shape: &document.Shape{Kind: document.KindText, Text: "Seasons 2024-2025 and 2026"},
		},
		{
			name:  "banner",
			shape: &document.Shape{Kind: document.KindText, Text: "BCL Re-Auction 2025"},
		},
		{
			name:  "photo-marked picture",
			shape: &document.Shape{Kind: document.KindPicture, Marker: document.MarkerPhoto, Box: document.Box{Top: bottom}},
		},
		{
			name:  "picture",
			shape: &document.Shape{Kind: document.KindPicture, Box: document.Box{Top: bottom}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := generation.DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			require.Equal(t, tt.stale, generation.NewStripper(cfg).IsStale(tt.shape))
		})
	}
}

func TestStripper_StripKeepsOrder(t *testing.T) {
	a := &document.Shape{ID: "a", Kind: document.KindPicture}
	b := &document.Shape{ID: "b", Kind: document.KindText, Text: "age: 31"}
	c := &document.Shape{ID: "c", Kind: document.KindText, Text: "Title"}
	d := &document.Shape{ID: "d", Kind: document.KindTable, Marker: document.MarkerOverlay, Table: &document.Table{}}
	slide := &document.Slide{Shapes: []*document.Shape{a, b, c, d}}

	removed := generation.NewStripper(generation.DefaultConfig()).Strip(slide)

	require.Equal(t, []*document.Shape{b, d}, removed)
	require.Equal(t, []*document.Shape{a, c}, slide.Shapes)
}
