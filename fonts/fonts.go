// Package fonts measures text for layout. Widths come from the metrics of
// the bundled Go faces; when a face is unavailable the oracle degrades to a
// per-character heuristic so measurement never fails at runtime.
package fonts

import (
	"errors"
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Per-character width factors (fraction of the point size) used when no
// parsed face is available, and per rune when a face lacks a glyph.
const (
	heuristicRegular = 0.60
	heuristicBold    = 0.62
)

// Face wraps a parsed TrueType face together with the raw bytes it was
// parsed from, which the shaped-measurement path re-reads.
type Face struct {
	font       *sfnt.Font
	unitsPerEm sfnt.Units
	ppem       fixed.Int26_6
	data       []byte
}

// ParseFace parses TrueType/OpenType data into a measurable face.
func ParseFace(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, errors.New("font data is empty")
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	unitsPerEm := font.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, errors.New("invalid unitsPerEm")
	}
	return &Face{
		font:       font,
		unitsPerEm: unitsPerEm,
		ppem:       fixed.Int26_6(unitsPerEm << 6),
		data:       data,
	}, nil
}

// advancePerMille returns the advance of r in 1/1000 em. Runes the face has
// no glyph for fall back to the heuristic so widths stay monotonic.
func (f *Face) advancePerMille(buf *sfnt.Buffer, r rune, fallback float64) float64 {
	gid, err := f.font.GlyphIndex(buf, r)
	if err != nil || gid == 0 {
		return fallback * 1000
	}
	adv, err := f.font.GlyphAdvance(buf, gid, f.ppem, xfont.HintingNone)
	if err != nil {
		return fallback * 1000
	}
	return scaleFixed(adv, f.unitsPerEm)
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}

// Oracle measures strings in the regular and bold report faces. The zero
// faces are the bundled Go fonts; both may be absent, in which case every
// measurement uses the heuristic. Safe for concurrent use.
type Oracle struct {
	regular *Face
	bold    *Face
	shaped  bool
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithFaces replaces the built-in faces. Passing nil forces the heuristic
// for that weight.
func WithFaces(regular, bold *Face) Option {
	return func(o *Oracle) {
		o.regular = regular
		o.bold = bold
	}
}

// WithShaping routes measurement through HarfBuzz shaping, which accounts
// for kerning and ligatures that the per-glyph sum misses.
func WithShaping() Option {
	return func(o *Oracle) { o.shaped = true }
}

// NewOracle builds the measurement oracle. It never fails: a face that
// cannot be parsed silently degrades to the heuristic.
func NewOracle(opts ...Option) *Oracle {
	o := &Oracle{}
	if f, err := ParseFace(goregular.TTF); err == nil {
		o.regular = f
	}
	if f, err := ParseFace(gobold.TTF); err == nil {
		o.bold = f
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Measure returns the rendered width of text in points at the given size.
// The result is 0 only for empty text and grows with every appended rune.
func (o *Oracle) Measure(text string, size float64, bold bool) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	face, factor := o.regular, heuristicRegular
	if bold {
		face, factor = o.bold, heuristicBold
	}
	if face == nil {
		return float64(len([]rune(text))) * size * factor
	}
	if o.shaped {
		if mille, ok := face.measureShaped(text); ok {
			return mille / 1000.0 * size
		}
	}
	var buf sfnt.Buffer
	var mille float64
	for _, r := range text {
		mille += face.advancePerMille(&buf, r, factor)
	}
	return mille / 1000.0 * size
}
