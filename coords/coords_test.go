package coords

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestIdentityTransform(t *testing.T) {
	p := Identity().Transform(Point{X: 3.5, Y: -7})
	if !almostEqual(p.X, 3.5) || !almostEqual(p.Y, -7) {
		t.Fatalf("identity moved point: %+v", p)
	}
}

func TestScaleThenTranslate(t *testing.T) {
	// Multiply applies the receiver first: scale, then shift.
	m := Scale(2, -2).Multiply(Translate(10, 100))
	p := m.Transform(Point{X: 3, Y: 4})
	if !almostEqual(p.X, 16) {
		t.Fatalf("x = %v, want 16", p.X)
	}
	if !almostEqual(p.Y, 92) {
		t.Fatalf("y = %v, want 92", p.Y)
	}
}

func TestNegativeScaleFlipsAxis(t *testing.T) {
	m := Scale(1, -1)
	p := m.Transform(Point{X: 0, Y: 5})
	if !almostEqual(p.Y, -5) {
		t.Fatalf("y = %v, want -5", p.Y)
	}
}
