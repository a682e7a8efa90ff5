// Package ink models captured handwritten signatures: polyline strokes in a
// device-pixel space with a top-left origin, and their mapping into PDF page
// space where the origin is bottom-left.
package ink

import (
	"math"

	"github.com/fieldops/sitedoc/coords"
)

// Stroke is one pen-down gesture in capture space.
type Stroke []coords.Point

// Signature is a set of strokes plus the dimensions of the surface they
// were captured on. Capture y grows downward.
type Signature struct {
	Strokes []Stroke
	Width   float64
	Height  float64
}

// Empty reports whether the signature has nothing drawable: a degenerate
// capture surface, or no stroke with at least two points.
func (s Signature) Empty() bool {
	if s.Width <= 0 || s.Height <= 0 {
		return true
	}
	for _, st := range s.Strokes {
		if len(st) >= 2 {
			return false
		}
	}
	return true
}

// Box is a destination rectangle in page space.
type Box struct {
	X, Y, W, H float64
}

// FitTo maps the drawable strokes into box, inset by pad on all sides.
// Aspect ratio is preserved and small captures are never upscaled. The
// mapped strokes are fresh slices; the capture data is left untouched.
// Strokes with fewer than two points are dropped as touch noise.
func (s Signature) FitTo(box Box, pad float64) []Stroke {
	if s.Empty() {
		return nil
	}
	availW := box.W - 2*pad
	availH := box.H - 2*pad
	if availW <= 0 || availH <= 0 {
		return nil
	}
	scale := math.Min(availW/s.Width, availH/s.Height)
	if scale > 1 {
		scale = 1
	}
	// Negated y scale flips the downward capture axis onto the upward page
	// axis; the translation pins the capture's top-left to the box's padded
	// top-left.
	m := coords.Scale(scale, -scale).Multiply(coords.Translate(box.X+pad, box.Y+box.H-pad))

	out := make([]Stroke, 0, len(s.Strokes))
	for _, st := range s.Strokes {
		if len(st) < 2 {
			continue
		}
		mapped := make(Stroke, len(st))
		for i, p := range st {
			mapped[i] = m.Transform(p)
		}
		out = append(out, mapped)
	}
	return out
}
