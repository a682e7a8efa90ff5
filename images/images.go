// Package images prepares raster logos for embedding. Only JPEG input is
// accepted: the encoded bytes pass straight through into a DCTDecode image
// XObject, so no pixel data is ever re-encoded.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"math"

	"github.com/fieldops/sitedoc/dataurl"
)

// ErrUnsupportedFormat reports a logo payload in any format other than JPEG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Logo is a decoded raster payload plus its pixel dimensions.
type Logo struct {
	Data   []byte
	Width  int
	Height int
}

// DecodeLogo parses a data: URL payload into an embeddable logo. The media
// type must be image/jpeg; pixel dimensions come from the JPEG header, so a
// corrupt payload is rejected here rather than by the viewer.
func DecodeLogo(payload string) (*Logo, error) {
	mime, data, err := dataurl.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("logo payload: %w", err)
	}
	if mime != "image/jpeg" {
		return nil, fmt.Errorf("%w: %q (want image/jpeg)", ErrUnsupportedFormat, mime)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read jpeg header: %w", err)
	}
	return &Logo{Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// FitWithin scales the pixel dimensions into a maxW x maxH box, preserving
// aspect ratio and never enlarging beyond 1 pt per pixel.
func (l *Logo) FitWithin(maxW, maxH float64) (w, h float64) {
	w, h = float64(l.Width), float64(l.Height)
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(maxW/w, maxH/h)
	if scale > 1 {
		scale = 1
	}
	return w * scale, h * scale
}

// StreamDict returns the image XObject dictionary entries. DCTDecode hands
// the untouched JPEG bytes to the viewer.
func (l *Logo) StreamDict() string {
	return fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode", l.Width, l.Height)
}
