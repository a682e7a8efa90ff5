// Package layout arranges report content on a single page. A cursor walks
// down from the top margin while primitives paint through the shared content
// writer and measure through the font oracle. There is no pagination:
// content below the bottom margin is the caller's responsibility to avoid.
package layout

import (
	"strings"

	"github.com/fieldops/sitedoc/contentstream"
	"github.com/fieldops/sitedoc/coords"
	"github.com/fieldops/sitedoc/fonts"
	"github.com/fieldops/sitedoc/ink"
)

// Sizes groups the type scale used across a document.
type Sizes struct {
	Title   float64
	Name    float64
	Section float64
	Body    float64
	Label   float64
}

func DefaultSizes() Sizes {
	return Sizes{Title: 18, Name: 14, Section: 12, Body: 10, Label: 7.5}
}

// Colors groups the palette used across a document.
type Colors struct {
	Text      contentstream.RGB
	Label     contentstream.RGB
	Accent    contentstream.RGB
	BoxFill   contentstream.RGB
	BoxStroke contentstream.RGB
	Ink       contentstream.RGB
}

func DefaultColors() Colors {
	return Colors{
		Text:      contentstream.RGB{R: 0.13, G: 0.13, B: 0.15},
		Label:     contentstream.RGB{R: 0.45, G: 0.45, B: 0.48},
		Accent:    contentstream.RGB{R: 0.10, G: 0.32, B: 0.60},
		BoxFill:   contentstream.RGB{R: 0.97, G: 0.97, B: 0.97},
		BoxStroke: contentstream.RGB{R: 0.62, G: 0.62, B: 0.65},
		Ink:       contentstream.RGB{R: 0.10, G: 0.12, B: 0.38},
	}
}

// Engine holds the cursor state and styling for one page.
type Engine struct {
	cs     *contentstream.Writer
	oracle *fonts.Oracle

	// Configuration
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	LineHeight   float64 // multiplier, e.g. 1.35
	Sizes        Sizes
	Colors       Colors
	InkWidth     float64
	SigBoxHeight float64
	Placeholder  string

	// State
	cursorY float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithPageSize sets the page dimensions in points.
func WithPageSize(width, height float64) Option {
	return func(e *Engine) {
		e.PageWidth = width
		e.PageHeight = height
	}
}

// WithMargin sets the uniform page margin.
func WithMargin(margin float64) Option {
	return func(e *Engine) { e.Margin = margin }
}

// WithLineHeight sets the leading multiplier.
func WithLineHeight(height float64) Option {
	return func(e *Engine) { e.LineHeight = height }
}

// WithSizes sets the type scale.
func WithSizes(s Sizes) Option {
	return func(e *Engine) { e.Sizes = s }
}

// WithColors sets the palette.
func WithColors(c Colors) Option {
	return func(e *Engine) { e.Colors = c }
}

// WithPlaceholder sets the text painted for absent values.
func WithPlaceholder(text string) Option {
	return func(e *Engine) { e.Placeholder = text }
}

// WithInkWidth sets the signature stroke width.
func WithInkWidth(width float64) Option {
	return func(e *Engine) { e.InkWidth = width }
}

// NewEngine creates a layout engine writing to cs and measuring with
// oracle, with the cursor at the top margin. A4 portrait by default.
func NewEngine(cs *contentstream.Writer, oracle *fonts.Oracle, opts ...Option) *Engine {
	e := &Engine{
		cs:           cs,
		oracle:       oracle,
		PageWidth:    595.28,
		PageHeight:   841.89,
		Margin:       50,
		LineHeight:   1.35,
		Sizes:        DefaultSizes(),
		Colors:       DefaultColors(),
		InkWidth:     1.5,
		SigBoxHeight: 80,
		Placeholder:  "Not provided",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cursorY = e.PageHeight - e.Margin
	return e
}

// Cursor returns the current vertical position.
func (e *Engine) Cursor() float64 { return e.cursorY }

// ContentWidth returns the printable width between the margins.
func (e *Engine) ContentWidth() float64 { return e.PageWidth - 2*e.Margin }

// Space consumes vertical room without painting.
func (e *Engine) Space(gap float64) { e.cursorY -= gap }

func (e *Engine) leading(size float64) float64 { return size * e.LineHeight }

// Wrap breaks text into lines no wider than maxWidth as measured by
// measure. Paragraphs wrap independently and an empty paragraph yields one
// empty line; a single word wider than maxWidth is emitted on its own
// overflowing line rather than split.
func Wrap(measure func(string) float64, text string, maxWidth float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= maxWidth {
				line = candidate
			} else {
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// wrapAt measures at body size in the given weight.
func (e *Engine) wrapAt(text string, maxWidth float64, bold bool) []string {
	return Wrap(func(s string) float64 {
		return e.oracle.Measure(s, e.Sizes.Body, bold)
	}, text, maxWidth)
}

// writeLines paints wrapped lines at x, descending one leading per line.
// Empty lines advance the cursor without a text run.
func (e *Engine) writeLines(lines []string, x float64, font contentstream.Font, size float64, color contentstream.RGB) {
	for _, line := range lines {
		if line != "" {
			e.cs.Text(x, e.cursorY-size, font, size, color, line)
		}
		e.cursorY -= e.leading(size)
	}
}

// Heading paints text bold at the given size, then descends by the size
// plus gapAfter.
func (e *Engine) Heading(text string, size, gapAfter float64) {
	e.cs.Text(e.Margin, e.cursorY-size, contentstream.FontBold, size, e.Colors.Text, text)
	e.cursorY -= size + gapAfter
}

// Divider strokes a hairline rule across the content width.
func (e *Engine) Divider() {
	e.cursorY -= 6
	e.cs.Line(e.Margin, e.cursorY, e.PageWidth-e.Margin, e.cursorY, e.Colors.BoxStroke, 0.75)
	e.cursorY -= 10
}

// LabelValue paints a small uppercase label above the wrapped value. An
// empty value renders the placeholder so the field still appears.
func (e *Engine) LabelValue(label, value string) {
	e.cs.Text(e.Margin, e.cursorY-e.Sizes.Label, contentstream.FontBold, e.Sizes.Label, e.Colors.Label, strings.ToUpper(label))
	e.cursorY -= e.leading(e.Sizes.Label)

	v := strings.TrimSpace(value)
	if v == "" {
		v = e.Placeholder
	}
	e.writeLines(e.wrapAt(v, e.ContentWidth(), false), e.Margin, contentstream.FontRegular, e.Sizes.Body, e.Colors.Text)
	e.cursorY -= e.Sizes.Body * 0.6
}

// Paragraph wraps value at body size; empty values render the placeholder.
func (e *Engine) Paragraph(value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		v = e.Placeholder
	}
	e.writeLines(e.wrapAt(v, e.ContentWidth(), false), e.Margin, contentstream.FontRegular, e.Sizes.Body, e.Colors.Text)
}

// TextBlock paints a section title followed by the wrapped value.
func (e *Engine) TextBlock(title, value string) {
	e.Heading(title, e.Sizes.Section, 4)
	e.Paragraph(value)
	e.cursorY -= e.Sizes.Body * 0.6
}

// Statement paints a wrapped emphasis line, bold in the accent color.
func (e *Engine) Statement(text string) {
	size := e.Sizes.Body + 1
	lines := Wrap(func(s string) float64 {
		return e.oracle.Measure(s, size, true)
	}, text, e.ContentWidth())
	e.writeLines(lines, e.Margin, contentstream.FontBold, size, e.Colors.Accent)
	e.cursorY -= e.Sizes.Body * 0.6
}

// BulletList paints each item with a bullet on its first wrapped line and a
// blank prefix hanging the continuation lines.
func (e *Engine) BulletList(items []string) {
	const bullet = "• "
	prefixWidth := e.oracle.Measure(bullet, e.Sizes.Body, false)
	for _, item := range items {
		lines := e.wrapAt(item, e.ContentWidth()-prefixWidth, false)
		for i := range lines {
			if lines[i] == "" {
				continue
			}
			if i == 0 {
				lines[i] = bullet + lines[i]
			} else {
				lines[i] = "   " + lines[i]
			}
		}
		e.writeLines(lines, e.Margin, contentstream.FontRegular, e.Sizes.Body, e.Colors.Text)
	}
	e.cursorY -= e.Sizes.Body * 0.6
}

// SignatureBox paints the signature area: a filled, stroked box with the
// captured strokes mapped inside. An empty capture leaves the box blank.
func (e *Engine) SignatureBox(sig ink.Signature) {
	e.cursorY -= e.SigBoxHeight
	box := ink.Box{X: e.Margin, Y: e.cursorY, W: e.ContentWidth(), H: e.SigBoxHeight}
	e.cs.Rect(box.X, box.Y, box.W, box.H, e.Colors.BoxFill, e.Colors.BoxStroke)
	strokes := sig.FitTo(box, 6)
	if len(strokes) > 0 {
		paths := make([][]coords.Point, len(strokes))
		for i, s := range strokes {
			paths[i] = s
		}
		e.cs.Polylines(paths, e.Colors.Ink, e.InkWidth)
	}
	e.cursorY -= e.Sizes.Body
}

// HeaderLogo names a registered image XObject and its placed dimensions.
type HeaderLogo struct {
	Name string
	W, H float64
}

// Header renders the identity row: the logo at the top-left with the
// business name beside it, or the name alone when there is no logo. With
// neither, the cursor does not move.
func (e *Engine) Header(logo *HeaderLogo, businessName string) {
	switch {
	case logo != nil:
		y := e.cursorY - logo.H
		e.cs.Image(logo.Name, coords.Scale(logo.W, logo.H).Multiply(coords.Translate(e.Margin, y)))
		if businessName != "" {
			baseline := y + logo.H/2 - e.Sizes.Name/3
			e.cs.Text(e.Margin+logo.W+12, baseline, contentstream.FontBold, e.Sizes.Name, e.Colors.Text, businessName)
		}
		e.cursorY = y - e.leading(e.Sizes.Body)
	case businessName != "":
		e.cs.Text(e.Margin, e.cursorY-e.Sizes.Name, contentstream.FontBold, e.Sizes.Name, e.Colors.Text, businessName)
		e.cursorY -= e.Sizes.Name + e.leading(e.Sizes.Body)/2
	}
}
