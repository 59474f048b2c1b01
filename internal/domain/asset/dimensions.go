package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Dimensions returns the stored pixel size of the image at path. Only the
// header is decoded; EXIF orientation is ignored.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()
	return decodeConfig(f)
}

// DecodeDimensions is Dimensions for an in-memory payload.
func DecodeDimensions(data []byte) (width, height int, err error) {
	return decodeConfig(bytes.NewReader(data))
}

func decodeConfig(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, ErrInvalidDimensions
	}
	return cfg.Width, cfg.Height, nil
}

// DisplaySize returns the size of the image at path as a viewer shows it,
// after applying EXIF orientation. Phone photos are often stored rotated.
func DisplaySize(path string) (width, height int, err error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, 0, ErrInvalidDimensions
	}
	return b.Dx(), b.Dy(), nil
}
