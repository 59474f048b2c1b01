package generation

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/asset"
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".wmf":  "image/x-wmf",
}

// SupportedFormat reports whether the asset's extension may be embedded.
func SupportedFormat(path string) bool {
	_, ok := contentTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FindPhotoSlot returns the leftmost picture on the slide, looking one level
// into groups. Ties keep document order.
func FindPhotoSlot(slide *document.Slide) *document.Shape {
	var slot *document.Shape
	for _, pic := range slide.Pictures() {
		if slot == nil || pic.Box.Left < slot.Box.Left {
			slot = pic
		}
	}
	return slot
}

// Fit scales a natural width×height into slot preserving aspect ratio and
// centres the result inside slot.
func Fit(slot document.Box, naturalW, naturalH int) document.Box {
	slotW, slotH := float64(slot.Width), float64(slot.Height)
	aspect := slotW / slotH
	if naturalW > 0 && naturalH > 0 {
		aspect = float64(naturalW) / float64(naturalH)
	}

	var w, h float64
	if aspect > slotW/slotH {
		w, h = slotW, slotW/aspect
	} else {
		w, h = slotH*aspect, slotH
	}
	out := document.Box{
		Width:  document.EMU(math.Round(w)),
		Height: document.EMU(math.Round(h)),
	}
	out.Left = slot.Left + (slot.Width-out.Width)/2
	out.Top = slot.Top + (slot.Height-out.Height)/2
	return out
}

// Binder replaces a slide's photo slot with an asset image.
type Binder struct {
	logger *slog.Logger
}

// NewBinder creates a Binder.
func NewBinder(logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Binder{logger: logger}
}

// Bind swaps the slide's photo slot for the asset, fitted and centred in
// the slot's box. The new picture takes the slot's position in z-order.
// On error the slide keeps its slot unless the embedded payload turned out
// empty, in which case the slide is left without a photo.
func (b *Binder) Bind(slide *document.Slide, a asset.Asset) (*document.Shape, error) {
	slot := FindPhotoSlot(slide)
	if slot == nil {
		return nil, ErrNoPhotoSlot
	}
	if slot.Box.Width <= 0 || slot.Box.Height <= 0 {
		return nil, ErrInvalidSlot
	}
	ext := strings.ToLower(filepath.Ext(a.Path))
	contentType, ok := contentTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAssetFormat, ext)
	}

	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}

	natW, natH, err := asset.DecodeDimensions(data)
	if err != nil {
		b.logger.Warn("image size unreadable, fitting to slot aspect", "path", a.Path, "error", err)
	}
	box := Fit(slot.Box, natW, natH)

	parent, index, err := slide.Locate(slot)
	if err != nil {
		return nil, err
	}
	pic := &document.Shape{
		ID:     slot.ID,
		Name:   slot.Name,
		Kind:   document.KindPicture,
		Box:    box,
		Marker: document.MarkerPhoto,
		Image: &document.Image{
			Name:        filepath.Base(a.Path),
			ContentType: contentType,
			Data:        data,
		},
	}
	if err := slide.RemoveShape(slot); err != nil {
		return nil, err
	}
	if parent == nil {
		slide.InsertShape(pic, index)
	} else {
		parent.InsertChild(pic, index)
	}

	if len(pic.Image.Data) == 0 {
		_ = slide.RemoveShape(pic)
		return nil, fmt.Errorf("%w: %s", ErrEmptyImagePayload, a.Path)
	}
	return pic, nil
}
