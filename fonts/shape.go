package fonts

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// measureShaped returns the shaped width of text in 1/1000 em units.
// Shaping at size 1000*64 means each fixed-point advance unit is 1/64 of a
// per-mille, so the sum divides back out cleanly.
func (f *Face) measureShaped(text string) (float64, bool) {
	face, err := tsfont.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		return 0, false
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(1000 * 64),
		Script:    language.Latin,
		Language:  language.DefaultLanguage(),
	}
	output := (&shaping.HarfbuzzShaper{}).Shape(input)

	var mille float64
	for _, g := range output.Glyphs {
		mille += float64(g.XAdvance) / 64.0
	}
	return mille, true
}
