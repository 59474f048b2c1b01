// Package doctest builds template decks and image fixtures for tests.
package doctest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/stretchr/testify/require"
)

// LayoutName is the layout used by TemplateDeck.
const LayoutName = "Title Only"

// SlotBox is the photo slot's box on the template slide.
var SlotBox = document.Box{Left: 200, Top: 300, Width: 200, Height: 200}

// TemplateDeck returns a deck holding only a template slide: a background
// picture, the photo slot (leftmost picture), a banner, and a title.
func TemplateDeck() *document.Deck {
	deck := document.New(&document.Layout{
		Name: LayoutName,
		Placeholders: []*document.Shape{
			{ID: "ph-title", Name: "Title 1", Kind: document.KindText, Box: document.Box{Width: 100, Height: 50}},
		},
	})
	deck.AppendSlide(&document.Slide{
		ID:     "template",
		Layout: LayoutName,
		Shapes: []*document.Shape{
			{ID: "bg", Name: "Background", Kind: document.KindPicture, Box: document.Box{Left: 600, Top: 0, Width: 400, Height: 400}, Image: PNGImage("bg.png")},
			{ID: "slot", Name: "Player Photo", Kind: document.KindPicture, Box: SlotBox, Image: PNGImage("placeholder.png")},
			{ID: "banner", Name: "Banner", Kind: document.KindText, Box: document.Box{Left: 0, Top: 0, Width: 1000, Height: 80}, Text: "BCL Re-Auction 2025"},
		},
	})
	return deck
}

// PNGImage returns a tiny embedded PNG payload.
func PNGImage(name string) *document.Image {
	return &document.Image{Name: name, ContentType: "image/png", Data: encodePNG(2, 2)}
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	return buf.Bytes()
}

// WriteImage writes a w×h image to dir/name, encoded by the name's extension
// (.png or .jpg/.jpeg), and returns its path.
func WriteImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
	default:
		require.NoError(t, png.Encode(f, img))
	}
	return path
}

// WriteBytes writes raw bytes to dir/name and returns its path.
func WriteBytes(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
