package generation_test

import (
	"testing"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/document/doctest"
	"github.com/rpggio/deckgen/internal/domain/asset"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

var kiran = roster.Record{
	DisplayName: "Kiran",
	Age:         "31 years",
	Category:    "Batsman",
	JoinKey:     "9740834449",
	IsValid:     true,
}

func newPipeline() *generation.Pipeline {
	return generation.NewPipeline(generation.DefaultConfig(), nil)
}

func photoOf(t *testing.T, slide *document.Slide) *document.Shape {
	t.Helper()
	for _, pic := range slide.Pictures() {
		if pic.Marker == document.MarkerPhoto {
			return pic
		}
	}
	t.Fatalf("slide has no bound photo")
	return nil
}

func overlayCells(t *testing.T, slide *document.Slide) []string {
	t.Helper()
	last := slide.Shapes[len(slide.Shapes)-1]
	require.Equal(t, document.MarkerOverlay, last.Marker, "overlay must be the topmost shape")
	var cells []string
	for _, row := range last.Table.Rows {
		for _, c := range row {
			cells = append(cells, c.Text)
		}
	}
	return cells
}

func countOverlays(slide *document.Slide) int {
	n := 0
	for _, tbl := range slide.Tables() {
		if tbl.Marker == document.MarkerOverlay {
			n++
		}
	}
	return n
}

func TestPipeline_KiranWithPhoto(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteImage(t, dir, "9740834449.png", 400, 300)
	deck := doctest.TemplateDeck()
	assets := asset.NewResolver(map[string]string{"9740834449": path})

	report := newPipeline().Run(deck, []roster.Record{kiran}, assets)

	require.Len(t, deck.Slides, 2)
	out := report.Outcomes[0]
	require.Equal(t, generation.StateCommitted, out.State)
	require.True(t, out.ImageBound)
	require.Equal(t, 1, out.SlideIndex)

	photo := photoOf(t, deck.Slides[1])
	require.Equal(t, document.Box{
		Left:   doctest.SlotBox.Left,
		Top:    doctest.SlotBox.Top + 25,
		Width:  200,
		Height: 150,
	}, photo.Box)
	require.Equal(t, "image/png", photo.Image.ContentType)
	require.NotEmpty(t, photo.Image.Data)

	require.Equal(t, []string{"Kiran", "31 years", "Batsman", "9740834449"}, overlayCells(t, deck.Slides[1]))
	require.Equal(t, generation.Stats{Total: 1, Committed: 1, WithImage: 1, SlidesInDeck: 2}, report.Stats)
}

func TestPipeline_KiranWithoutPhoto(t *testing.T) {
	deck := doctest.TemplateDeck()

	report := newPipeline().Run(deck, []roster.Record{kiran}, asset.NewResolver(nil))

	require.Len(t, deck.Slides, 2)
	out := report.Outcomes[0]
	require.Equal(t, generation.StateCommitted, out.State)
	require.False(t, out.ImageBound)
	require.ErrorIs(t, out.Err, generation.ErrAssetNotFound)
	require.Equal(t, []string{"Kiran", "31 years", "Batsman", "9740834449"}, overlayCells(t, deck.Slides[1]))

	slot := generation.FindPhotoSlot(deck.Slides[1])
	require.Equal(t, doctest.SlotBox, slot.Box, "template slot is left in place")
	require.Equal(t, 1, report.Stats.WithoutImage)
}

func TestPipeline_DeckCountCountsValidKeysOnly(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteImage(t, dir, "9740834449.jpg", 40, 40)
	deck := doctest.TemplateDeck()
	records := []roster.Record{
		kiran,
		{DisplayName: "Anil", JoinKey: "9876543210"},
		{DisplayName: "NoKey"},
		{DisplayName: "Letters", JoinKey: "98AB"},
		{DisplayName: "Placeholder", JoinKey: "?"},
		{DisplayName: "Padded", JoinKey: " 9123456780 "},
		{DisplayName: "Zeros", JoinKey: "0000000000"},
	}

	report := newPipeline().Run(deck, records, asset.NewResolver(map[string]string{"9740834449": path}))

	require.Len(t, deck.Slides, 1+4)
	require.Equal(t, 4, report.Stats.Committed)
	require.Equal(t, 1, report.Stats.WithImage)
	require.Equal(t, 3, report.Stats.WithoutImage)
	require.Equal(t, 3, report.Stats.Skipped)
	for _, o := range report.Outcomes[2:5] {
		require.Equal(t, generation.StateSkipped, o.State)
		require.ErrorIs(t, o.Err, generation.ErrInvalidJoinKey)
		require.Equal(t, -1, o.SlideIndex)
	}
	require.Equal(t, "9123456780", report.Outcomes[5].Record.JoinKey)
	require.Equal(t, generation.StateCommitted, report.Outcomes[6].State)
	require.Equal(t, "Zeros", document.OverlayName(deck.Slides[4]))
}

func TestPipeline_RegenerationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteImage(t, dir, "9740834449.png", 400, 300)
	assets := asset.NewResolver(map[string]string{"9740834449": path})
	records := []roster.Record{kiran, {DisplayName: "Anil", Age: "25", Category: "Bowler", JoinKey: "9876543210"}}

	// A template that still carries content from an earlier pass.
	deck := doctest.TemplateDeck()
	tmpl, _ := deck.Template()
	tmpl.InsertShape(&document.Shape{Kind: document.KindText, Text: "Ph: 9999999999"}, document.End)
	tmpl.InsertShape(&document.Shape{
		Kind:   document.KindTable,
		Marker: document.MarkerOverlay,
		Box:    document.Box{Top: document.Inches(4.5), Width: deck.Width},
		Table:  &document.Table{Rows: [][]document.Cell{{{Text: "Old"}}}},
	}, document.End)

	p := newPipeline()
	p.Run(deck, records, assets)
	first := snapshot(t, deck)

	deck.Truncate(1)
	p.Run(deck, records, assets)
	second := snapshot(t, deck)

	require.Equal(t, first, second)
	require.Len(t, deck.Slides, 3)
	for _, s := range deck.Slides[1:] {
		require.Equal(t, 1, countOverlays(s))
		for _, sh := range s.Shapes {
			require.NotEqual(t, "Ph: 9999999999", sh.Text)
		}
	}
}

func snapshot(t *testing.T, deck *document.Deck) [][]string {
	var out [][]string
	for _, s := range deck.Slides[1:] {
		out = append(out, overlayCells(t, s))
	}
	return out
}

func TestPipeline_RestrippingGeneratedSlideKeepsOneOverlay(t *testing.T) {
	deck := doctest.TemplateDeck()
	newPipeline().Run(deck, []roster.Record{kiran}, nil)
	slide := deck.Slides[1]

	stripper := generation.NewStripper(generation.DefaultConfig())
	builder := generation.NewOverlayBuilder(stripper)
	for i := 0; i < 3; i++ {
		stripper.Strip(slide)
		_, err := builder.Build(slide, kiran, deck.Width)
		require.NoError(t, err)
	}
	require.Equal(t, 1, countOverlays(slide))
}

func TestPipeline_FitToHeight(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteImage(t, dir, "9740834449.png", 300, 600)
	deck := doctest.TemplateDeck()

	newPipeline().Run(deck, []roster.Record{kiran}, asset.NewResolver(map[string]string{"9740834449": path}))

	photo := photoOf(t, deck.Slides[1])
	require.Equal(t, document.Box{Left: 250, Top: 300, Width: 100, Height: 200}, photo.Box)
}

func TestPipeline_UnsupportedFormatKeepsSlot(t *testing.T) {
	deck := doctest.TemplateDeck()
	assets := asset.NewResolver(map[string]string{"9740834449": "/photos/9740834449.webp"})

	report := newPipeline().Run(deck, []roster.Record{kiran}, assets)

	out := report.Outcomes[0]
	require.Equal(t, generation.StateCommitted, out.State)
	require.False(t, out.ImageBound)
	require.ErrorIs(t, out.Err, generation.ErrUnsupportedAssetFormat)

	slot := generation.FindPhotoSlot(deck.Slides[1])
	require.Equal(t, "placeholder.png", slot.Image.Name)
	require.Empty(t, slot.Marker)
}

func TestPipeline_EmptyPayloadLeavesNoPhoto(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteBytes(t, dir, "9740834449.png", nil)
	deck := doctest.TemplateDeck()

	report := newPipeline().Run(deck, []roster.Record{kiran}, asset.NewResolver(map[string]string{"9740834449": path}))

	out := report.Outcomes[0]
	require.Equal(t, generation.StateCommitted, out.State)
	require.False(t, out.ImageBound)
	require.ErrorIs(t, out.Err, generation.ErrEmptyImagePayload)

	pics := deck.Slides[1].Pictures()
	require.Len(t, pics, 1, "only the background remains")
	require.Equal(t, "Background", pics[0].Name)
}

func TestPipeline_MissingTemplateFails(t *testing.T) {
	deck := document.New()

	report := newPipeline().Run(deck, []roster.Record{kiran}, nil)

	require.Empty(t, deck.Slides)
	require.Equal(t, generation.StateFailed, report.Outcomes[0].State)
	require.ErrorIs(t, report.Outcomes[0].Err, generation.ErrCloneFailed)
	require.Equal(t, 1, report.Stats.Failed)
}

func TestPipeline_OverlayFailureStillCommits(t *testing.T) {
	deck := doctest.TemplateDeck()
	deck.Width = 0

	report := newPipeline().Run(deck, []roster.Record{kiran}, nil)

	require.Len(t, deck.Slides, 2)
	out := report.Outcomes[0]
	require.Equal(t, generation.StateCommitted, out.State)
	require.ErrorIs(t, out.OverlayErr, generation.ErrOverlayFailed)
	require.Equal(t, 1, report.Stats.OverlayFailures)
}

func TestPipeline_TemplateNeverMutated(t *testing.T) {
	dir := t.TempDir()
	path := doctest.WriteImage(t, dir, "9740834449.png", 400, 300)
	deck := doctest.TemplateDeck()
	before := document.CloneSlide(deck.Slides[0])

	newPipeline().Run(deck, []roster.Record{kiran, kiran}, asset.NewResolver(map[string]string{"9740834449": path}))

	tmpl := deck.Slides[0]
	require.Equal(t, "template", tmpl.ID)
	require.Len(t, tmpl.Shapes, len(before.Shapes))
	for i, sh := range tmpl.Shapes {
		require.Equal(t, before.Shapes[i].Box, sh.Box)
		require.Equal(t, before.Shapes[i].Marker, sh.Marker)
	}
}
