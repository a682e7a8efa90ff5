// Package contentstream emits the PDF page-description operators a document
// is painted with: positioned text runs, rectangles, stroked polylines and
// image placements.
package contentstream

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/fieldops/sitedoc/coords"
)

// Font names a page font resource registered by the composer.
type Font string

const (
	FontRegular Font = "F1"
	FontBold    Font = "F2"
)

// RGB is a device color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

var (
	Black = RGB{}
	White = RGB{R: 1, G: 1, B: 1}
)

// Writer accumulates the operator stream for a single page. It owns its
// buffer exclusively; hand a *Writer around, never a copy.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

// Text paints one line of text with its baseline-left corner at (x, y).
// The line is WinAnsi-encoded to match the page font declarations.
func (w *Writer) Text(x, y float64, font Font, size float64, color RGB, line string) {
	w.buf.WriteString("BT\n")
	fmt.Fprintf(&w.buf, "/%s %s Tf\n", font, fmtNum(size))
	fmt.Fprintf(&w.buf, "%s %s %s rg\n", fmtNum(color.R), fmtNum(color.G), fmtNum(color.B))
	fmt.Fprintf(&w.buf, "1 0 0 1 %s %s Tm\n", fmtNum(x), fmtNum(y))
	w.buf.Write(escapeString(winAnsi(line)))
	w.buf.WriteString(" Tj\nET\n")
}

// Rect paints a rectangle filled with fill and stroked with stroke at a
// 1 pt border width.
func (w *Writer) Rect(x, y, width, height float64, fill, stroke RGB) {
	w.buf.WriteString("q\n")
	fmt.Fprintf(&w.buf, "%s %s %s rg\n", fmtNum(fill.R), fmtNum(fill.G), fmtNum(fill.B))
	fmt.Fprintf(&w.buf, "%s %s %s RG\n", fmtNum(stroke.R), fmtNum(stroke.G), fmtNum(stroke.B))
	w.buf.WriteString("1 w\n")
	fmt.Fprintf(&w.buf, "%s %s %s %s re\n", fmtNum(x), fmtNum(y), fmtNum(width), fmtNum(height))
	w.buf.WriteString("B\nQ\n")
}

// Line strokes a single segment.
func (w *Writer) Line(x1, y1, x2, y2 float64, color RGB, width float64) {
	w.buf.WriteString("q\n")
	fmt.Fprintf(&w.buf, "%s %s %s RG\n", fmtNum(color.R), fmtNum(color.G), fmtNum(color.B))
	fmt.Fprintf(&w.buf, "%s w\n", fmtNum(width))
	fmt.Fprintf(&w.buf, "%s %s m\n", fmtNum(x1), fmtNum(y1))
	fmt.Fprintf(&w.buf, "%s %s l\n", fmtNum(x2), fmtNum(y2))
	w.buf.WriteString("S\nQ\n")
}

// Polylines strokes each point run as an open path, in recording order and
// without smoothing. Runs shorter than two points paint nothing.
func (w *Writer) Polylines(strokes [][]coords.Point, color RGB, width float64) {
	if len(strokes) == 0 {
		return
	}
	w.buf.WriteString("q\n")
	fmt.Fprintf(&w.buf, "%s %s %s RG\n", fmtNum(color.R), fmtNum(color.G), fmtNum(color.B))
	fmt.Fprintf(&w.buf, "%s w\n", fmtNum(width))
	for _, stroke := range strokes {
		if len(stroke) < 2 {
			continue
		}
		fmt.Fprintf(&w.buf, "%s %s m\n", fmtNum(stroke[0].X), fmtNum(stroke[0].Y))
		for _, p := range stroke[1:] {
			fmt.Fprintf(&w.buf, "%s %s l\n", fmtNum(p.X), fmtNum(p.Y))
		}
		w.buf.WriteString("S\n")
	}
	w.buf.WriteString("Q\n")
}

// Image places the named XObject under the given transform.
func (w *Writer) Image(name string, m coords.Matrix) {
	w.buf.WriteString("q\n")
	fmt.Fprintf(&w.buf, "%s %s %s %s %s %s cm\n",
		fmtNum(m[0]), fmtNum(m[1]), fmtNum(m[2]), fmtNum(m[3]), fmtNum(m[4]), fmtNum(m[5]))
	fmt.Fprintf(&w.buf, "/%s Do\n", name)
	w.buf.WriteString("Q\n")
}

// Bytes returns the accumulated operator stream.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the stream length in bytes.
func (w *Writer) Len() int { return w.buf.Len() }

// fmtNum renders a number with at most two decimals, reducing integral
// values to bare integers. Values that round to zero collapse to "0" so
// float noise never leaks into the stream.
func fmtNum(v float64) string {
	if math.Abs(v) < 1e-6 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "0.00" || s == "-0.00" {
		return "0"
	}
	return strings.TrimSuffix(s, ".00")
}

// winAnsi converts line to CP1252, the encoding declared for the page
// fonts. Unmappable runes degrade per rune rather than failing the run.
func winAnsi(line string) []byte {
	out := make([]byte, 0, len(line))
	for _, r := range line {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return out
}

// escapeString wraps raw bytes as a PDF literal string. Backslash and both
// parens must always be escaped; control and high bytes go out as octal so
// the stream stays 7-bit clean.
func escapeString(raw []byte) []byte {
	var b bytes.Buffer
	b.WriteByte('(')
	for _, ch := range raw {
		switch ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			if ch < 0x20 || ch >= 0x80 {
				fmt.Fprintf(&b, "\\%03o", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte(')')
	return b.Bytes()
}
