package ink

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fieldops/sitedoc/coords"
)

func TestEmpty(t *testing.T) {
	cases := []struct {
		name string
		sig  Signature
		want bool
	}{
		{"no strokes", Signature{Width: 300, Height: 120}, true},
		{"zero surface", Signature{Strokes: []Stroke{{{X: 0, Y: 0}, {X: 1, Y: 1}}}}, true},
		{"only single points", Signature{Strokes: []Stroke{{{X: 5, Y: 5}}, {{X: 9, Y: 9}}}, Width: 300, Height: 120}, true},
		{"drawable", Signature{Strokes: []Stroke{{{X: 0, Y: 0}, {X: 10, Y: 10}}}, Width: 300, Height: 120}, false},
	}
	for _, c := range cases {
		if got := c.sig.Empty(); got != c.want {
			t.Errorf("%s: Empty() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFitToKeepsPointsInsideBox(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sig := Signature{Width: 640, Height: 200}
	for i := 0; i < 12; i++ {
		st := make(Stroke, 2+rng.Intn(30))
		for j := range st {
			st[j] = coords.Point{X: rng.Float64() * sig.Width, Y: rng.Float64() * sig.Height}
		}
		sig.Strokes = append(sig.Strokes, st)
	}

	box := Box{X: 60, Y: 100, W: 220, H: 70}
	const pad = 4.0
	mapped := sig.FitTo(box, pad)
	if len(mapped) != len(sig.Strokes) {
		t.Fatalf("stroke count = %d, want %d", len(mapped), len(sig.Strokes))
	}
	for _, st := range mapped {
		for _, p := range st {
			if p.X < box.X || p.X > box.X+box.W || p.Y < box.Y || p.Y > box.Y+box.H {
				t.Fatalf("point %+v escapes box %+v", p, box)
			}
		}
	}
}

func TestFitToFlipsVertically(t *testing.T) {
	sig := Signature{
		Strokes: []Stroke{{{X: 0, Y: 0}, {X: 0, Y: 100}}},
		Width:   100, Height: 100,
	}
	mapped := sig.FitTo(Box{X: 0, Y: 0, W: 50, H: 50}, 0)
	top, bottom := mapped[0][0], mapped[0][1]
	if top.Y <= bottom.Y {
		t.Fatalf("capture top mapped to y=%v, below capture bottom y=%v", top.Y, bottom.Y)
	}
}

func TestFitToNeverUpscales(t *testing.T) {
	sig := Signature{
		Strokes: []Stroke{{{X: 0, Y: 0}, {X: 10, Y: 5}}},
		Width:   10, Height: 5,
	}
	mapped := sig.FitTo(Box{X: 0, Y: 0, W: 400, H: 200}, 10)
	dx := math.Abs(mapped[0][1].X - mapped[0][0].X)
	if dx > 10+1e-9 {
		t.Fatalf("horizontal extent %v exceeds capture extent 10", dx)
	}
}

func TestFitToDropsSinglePointStrokes(t *testing.T) {
	sig := Signature{
		Strokes: []Stroke{{{X: 3, Y: 3}}, {{X: 0, Y: 0}, {X: 50, Y: 50}}},
		Width:   100, Height: 100,
	}
	mapped := sig.FitTo(Box{X: 0, Y: 0, W: 100, H: 100}, 0)
	if len(mapped) != 1 {
		t.Fatalf("mapped %d strokes, want 1", len(mapped))
	}
}

func TestFitToDoesNotMutateCapture(t *testing.T) {
	orig := coords.Point{X: 25, Y: 75}
	sig := Signature{
		Strokes: []Stroke{{orig, {X: 30, Y: 80}}},
		Width:   100, Height: 100,
	}
	sig.FitTo(Box{X: 10, Y: 10, W: 40, H: 40}, 2)
	if sig.Strokes[0][0] != orig {
		t.Fatalf("capture point mutated: %+v", sig.Strokes[0][0])
	}
}

func TestFitToDegenerateBox(t *testing.T) {
	sig := Signature{
		Strokes: []Stroke{{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		Width:   100, Height: 100,
	}
	if got := sig.FitTo(Box{X: 0, Y: 0, W: 6, H: 6}, 4); got != nil {
		t.Fatalf("expected nil for box smaller than padding, got %d strokes", len(got))
	}
}
