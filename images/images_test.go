package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/fieldops/sitedoc/dataurl"
)

func jpegPayload(t *testing.T, w, h int) (string, []byte) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return dataurl.Encode("image/jpeg", buf.Bytes()), buf.Bytes()
}

func TestDecodeLogo(t *testing.T) {
	payload, raw := jpegPayload(t, 8, 4)
	logo, err := DecodeLogo(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if logo.Width != 8 || logo.Height != 4 {
		t.Fatalf("dimensions = %dx%d, want 8x4", logo.Width, logo.Height)
	}
	if !bytes.Equal(logo.Data, raw) {
		t.Fatal("jpeg bytes were not passed through untouched")
	}
}

func TestDecodeLogoRejectsPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	_, err := DecodeLogo(dataurl.Encode("image/png", buf.Bytes()))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeLogoRejectsNonImageMIME(t *testing.T) {
	_, err := DecodeLogo(dataurl.Encode("text/plain", []byte("logo")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeLogoRejectsCorruptJPEG(t *testing.T) {
	_, err := DecodeLogo(dataurl.Encode("image/jpeg", []byte("definitely not a jpeg")))
	if err == nil {
		t.Fatal("expected header error")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("corrupt payload misreported as format error: %v", err)
	}
}

func TestDecodeLogoRejectsBadDataURL(t *testing.T) {
	if _, err := DecodeLogo("http://example.com/logo.jpg"); err == nil {
		t.Fatal("expected data URL error")
	}
}

func TestFitWithinDownscales(t *testing.T) {
	l := &Logo{Width: 800, Height: 200}
	w, h := l.FitWithin(160, 60)
	if w != 160 || h != 40 {
		t.Fatalf("fit = %vx%v, want 160x40", w, h)
	}
}

func TestFitWithinHeightBound(t *testing.T) {
	l := &Logo{Width: 100, Height: 400}
	w, h := l.FitWithin(160, 60)
	if h != 60 || w != 15 {
		t.Fatalf("fit = %vx%v, want 15x60", w, h)
	}
}

func TestFitWithinNeverUpscales(t *testing.T) {
	l := &Logo{Width: 50, Height: 20}
	w, h := l.FitWithin(200, 200)
	if w != 50 || h != 20 {
		t.Fatalf("fit = %vx%v, want 50x20", w, h)
	}
}

func TestStreamDict(t *testing.T) {
	l := &Logo{Width: 320, Height: 96}
	d := l.StreamDict()
	for _, want := range []string{
		"/Type /XObject",
		"/Subtype /Image",
		"/Width 320",
		"/Height 96",
		"/ColorSpace /DeviceRGB",
		"/BitsPerComponent 8",
		"/Filter /DCTDecode",
	} {
		if !strings.Contains(d, want) {
			t.Fatalf("dict missing %q: %s", want, d)
		}
	}
}
