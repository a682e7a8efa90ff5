// Package compose turns flat input records into finished documents. Each
// generator call lays the record out with the layout engine, assembles the
// object graph and returns the whole file as a
// data:application/pdf;base64,... string. Calls are independent and safe to
// run concurrently.
package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fieldops/sitedoc/contentstream"
	"github.com/fieldops/sitedoc/dataurl"
	"github.com/fieldops/sitedoc/fonts"
	"github.com/fieldops/sitedoc/images"
	"github.com/fieldops/sitedoc/ink"
	"github.com/fieldops/sitedoc/layout"
	"github.com/fieldops/sitedoc/observability"
	"github.com/fieldops/sitedoc/writer"
)

const (
	producer = "sitedoc"

	fontRegularObj = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	fontBoldObj    = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>"

	logoName      = "Im1"
	maxLogoWidth  = 150
	maxLogoHeight = 50

	dateLayout    = "2 Jan 2006"
	timeLayout    = "15:04"
	pdfDateLayout = "D:20060102150405Z"
)

// Generator renders documents under one theme. The zero value is not usable;
// construct with NewGenerator.
type Generator struct {
	theme         Theme
	oracle        *fonts.Oracle
	log           observability.Logger
	tracer        observability.Tracer
	deterministic bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option { return func(g *Generator) { g.theme = t } }

// WithOracle substitutes the text-measurement oracle.
func WithOracle(o *fonts.Oracle) Option { return func(g *Generator) { g.oracle = o } }

// WithLogger attaches a logger; the default is silent.
func WithLogger(l observability.Logger) Option { return func(g *Generator) { g.log = l } }

// WithTracer attaches a tracer; the default is a no-op.
func WithTracer(tr observability.Tracer) Option { return func(g *Generator) { g.tracer = tr } }

// WithDeterministicIDs derives the file identifier from the document kind
// and reference instead of fresh randomness, so identical input yields
// byte-identical output.
func WithDeterministicIDs() Option { return func(g *Generator) { g.deterministic = true } }

// NewGenerator constructs a Generator with the default theme, bundled font
// metrics and silent observability.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		theme:  DefaultTheme(),
		oracle: fonts.NewOracle(),
		log:    observability.NopLogger{},
		tracer: observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// pair is one label/value field.
type pair struct {
	label string
	value string
}

// block is one titled narrative; rich blocks render their text as Markdown.
type block struct {
	title string
	text  string
	rich  bool
}

// document is the parameterized flow both composers share: the field
// orderings differ per document kind, the rendering does not.
type document struct {
	kind       string
	title      string
	business   string
	logo       string
	identity   []pair
	details    []pair
	statement  string
	blocks     []block
	listTitle  string
	listItems  []string
	signedBy   string
	signedRole string
	signature  ink.Signature
	reference  string
	createdAt  time.Time
}

// AcceptanceSheet generates a customer acceptance sign-off sheet.
func (g *Generator) AcceptanceSheet(ctx context.Context, in AcceptanceInput) (string, error) {
	return g.render(ctx, in.document())
}

// OnsiteReport generates an onsite service visit report.
func (g *Generator) OnsiteReport(ctx context.Context, in OnsiteReportInput) (string, error) {
	return g.render(ctx, in.document())
}

func (g *Generator) render(ctx context.Context, doc document) (string, error) {
	start := time.Now()
	_, span := g.tracer.StartSpan(ctx, "compose."+doc.kind)
	defer span.Finish()

	var logo *images.Logo
	if doc.logo != "" {
		l, err := images.DecodeLogo(doc.logo)
		if err != nil {
			return "", g.fail(span, doc.kind, err)
		}
		logo = l
	}

	opts, err := g.theme.layoutOptions()
	if err != nil {
		return "", g.fail(span, doc.kind, fmt.Errorf("theme: %w", err))
	}
	cs := contentstream.NewWriter()
	eng := layout.NewEngine(cs, g.oracle, opts...)

	var header *layout.HeaderLogo
	if logo != nil {
		w, h := logo.FitWithin(maxLogoWidth, maxLogoHeight)
		header = &layout.HeaderLogo{Name: logoName, W: w, H: h}
	}
	eng.Header(header, doc.business)

	eng.Heading(doc.title, eng.Sizes.Title, 8)
	eng.Divider()

	for _, f := range doc.identity {
		eng.LabelValue(f.label, f.value)
	}
	if len(doc.details) > 0 {
		eng.Divider()
		for _, f := range doc.details {
			eng.LabelValue(f.label, f.value)
		}
	}

	if doc.statement != "" {
		eng.Space(4)
		eng.Statement(doc.statement)
	}

	for _, b := range doc.blocks {
		if b.rich && strings.TrimSpace(b.text) != "" {
			eng.Heading(b.title, eng.Sizes.Section, 4)
			if err := eng.Markdown(b.text); err != nil {
				return "", g.fail(span, doc.kind, fmt.Errorf("render markdown: %w", err))
			}
			eng.Space(eng.Sizes.Body * 0.6)
		} else {
			eng.TextBlock(b.title, b.text)
		}
	}

	if len(doc.listItems) > 0 {
		eng.Heading(doc.listTitle, eng.Sizes.Section, 4)
		eng.BulletList(doc.listItems)
	}

	eng.Space(6)
	eng.SignatureBox(doc.signature)
	eng.LabelValue("Signed by", signerLine(doc.signedBy, doc.signedRole))

	arena := writer.NewDocument()
	regular := arena.AddValue(fontRegularObj)
	bold := arena.AddValue(fontBoldObj)
	var logoRef writer.Ref
	if logo != nil {
		logoRef = arena.AddStream(logo.StreamDict(), logo.Data)
	}
	content := arena.AddStream("", cs.Bytes())

	pages := arena.Reserve()
	xobjects := ""
	if logo != nil {
		xobjects = fmt.Sprintf(" /XObject << /%s %s >>", logoName, logoRef)
	}
	page := arena.AddValue(fmt.Sprintf(
		"<< /Type /Page /Parent %s /MediaBox [0 0 %s %s] /Resources << /Font << /%s %s /%s %s >>%s >> /Contents %s >>",
		pages, num(eng.PageWidth), num(eng.PageHeight),
		contentstream.FontRegular, regular, contentstream.FontBold, bold,
		xobjects, content))
	arena.FillValue(pages, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count 1 >>", page))
	catalog := arena.AddValue(fmt.Sprintf("<< /Type /Catalog /Pages %s >>", pages))
	info := arena.AddValue(infoDict(doc))

	out, err := arena.Assemble(writer.Config{
		Root:          catalog,
		Info:          info,
		Deterministic: g.deterministic,
		IDSeed:        doc.kind + ":" + doc.reference,
	})
	if err != nil {
		return "", g.fail(span, doc.kind, fmt.Errorf("assemble: %w", err))
	}

	span.SetTag(observability.MetricOutputBytes, len(out))
	g.log.Info("document generated",
		observability.String("kind", doc.kind),
		observability.String("reference", doc.reference),
		observability.Int(observability.MetricObjectCount, arena.Len()),
		observability.Int(observability.MetricOutputBytes, len(out)),
		observability.Int64(observability.MetricComposeTime, time.Since(start).Milliseconds()),
	)
	return dataurl.Encode("application/pdf", out), nil
}

func (g *Generator) fail(span observability.Span, kind string, err error) error {
	span.SetError(err)
	g.log.Error("document generation failed",
		observability.String("kind", kind),
		observability.Error("error", err),
	)
	return err
}

// infoDict builds the document information dictionary. The creation date is
// the input's completion timestamp so deterministic output stays stable; it
// falls back to the current time when the input carries none.
func infoDict(doc document) string {
	title := doc.title
	if doc.reference != "" {
		title += " " + doc.reference
	}
	created := doc.createdAt
	if created.IsZero() {
		created = time.Now()
	}
	return fmt.Sprintf("<< /Title (%s) /Producer (%s) /CreationDate (%s) >>",
		escapeText(title), producer, created.UTC().Format(pdfDateLayout))
}

func signerLine(name, role string) string {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	switch {
	case name == "":
		return ""
	case role == "":
		return name
	default:
		return name + ", " + role
	}
}

// escapeText escapes the string-literal specials for dictionary strings.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
