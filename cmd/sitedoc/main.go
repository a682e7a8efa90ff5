package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fieldops/sitedoc/compose"
	"github.com/fieldops/sitedoc/coords"
	"github.com/fieldops/sitedoc/dataurl"
	"github.com/fieldops/sitedoc/ink"
	"github.com/fieldops/sitedoc/observability"
)

type options struct {
	jobPath       string
	outPath       string
	themePath     string
	deterministic bool
	verbose       bool
}

// job is the YAML shape of one generation request. Fields irrelevant to the
// requested kind are ignored.
type job struct {
	Kind string `yaml:"kind"`

	BusinessName string `yaml:"business_name"`
	CustomerName string `yaml:"customer_name"`
	ProjectName  string `yaml:"project_name"`
	SiteAddress  string `yaml:"site_address"`
	Reference    string `yaml:"reference"`
	Engineer     string `yaml:"engineer"`

	CompletedAt time.Time `yaml:"completed_at"`
	ArrivedAt   time.Time `yaml:"arrived_at"`
	DepartedAt  time.Time `yaml:"departed_at"`

	Decision int      `yaml:"decision"`
	Snags    []string `yaml:"snags"`

	WorkSummary   string   `yaml:"work_summary"`
	MaterialsUsed string   `yaml:"materials_used"`
	Notes         string   `yaml:"notes"`
	RichNotes     bool     `yaml:"rich_notes"`
	FollowUps     []string `yaml:"follow_ups"`

	SignedBy   string       `yaml:"signed_by"`
	SignedRole string       `yaml:"signed_role"`
	Signature  jobSignature `yaml:"signature"`

	// Logo is a data:image/jpeg;base64 payload; LogoFile points at a JPEG
	// on disk and wins when both are set.
	Logo     string `yaml:"logo"`
	LogoFile string `yaml:"logo_file"`
}

// jobSignature carries strokes as flat x,y coordinate lists.
type jobSignature struct {
	Width   float64     `yaml:"width"`
	Height  float64     `yaml:"height"`
	Strokes [][]float64 `yaml:"strokes"`
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sitedoc: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "sitedoc: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: sitedoc [flags] <job.yaml>\n")
		flag.PrintDefaults()
	}
	out := flag.String("out", "", "Output path (default <reference>.pdf)")
	theme := flag.String("theme", "", "Theme YAML overriding the built-in look")
	deterministic := flag.Bool("deterministic", false, "Derive the file identifier from the reference")
	verbose := flag.Bool("v", false, "Log generation details to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing job file")
	}
	opts.jobPath = flag.Arg(0)
	opts.outPath = *out
	opts.themePath = *theme
	opts.deterministic = *deterministic
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	data, err := os.ReadFile(opts.jobPath)
	if err != nil {
		return fmt.Errorf("read job: %w", err)
	}
	var j job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("parse job: %w", err)
	}

	logo, err := resolveLogo(j)
	if err != nil {
		return err
	}
	sig, err := j.Signature.toInk()
	if err != nil {
		return err
	}

	genOpts := []compose.Option{}
	if opts.themePath != "" {
		theme, err := compose.LoadTheme(opts.themePath)
		if err != nil {
			return err
		}
		genOpts = append(genOpts, compose.WithTheme(theme))
	}
	if opts.deterministic {
		genOpts = append(genOpts, compose.WithDeterministicIDs())
	}
	if opts.verbose {
		genOpts = append(genOpts, compose.WithLogger(stderrLogger{}))
	}
	g := compose.NewGenerator(genOpts...)

	var doc string
	switch j.Kind {
	case "acceptance":
		doc, err = g.AcceptanceSheet(context.Background(), compose.AcceptanceInput{
			BusinessName: j.BusinessName,
			CustomerName: j.CustomerName,
			ProjectName:  j.ProjectName,
			Reference:    j.Reference,
			CompletedAt:  j.CompletedAt,
			Decision:     compose.Decision(j.Decision),
			Snags:        j.Snags,
			Notes:        j.Notes,
			RichNotes:    j.RichNotes,
			SignedBy:     j.SignedBy,
			SignedRole:   j.SignedRole,
			Signature:    sig,
			Logo:         logo,
		})
	case "site-report":
		doc, err = g.OnsiteReport(context.Background(), compose.OnsiteReportInput{
			BusinessName:  j.BusinessName,
			CustomerName:  j.CustomerName,
			SiteAddress:   j.SiteAddress,
			Reference:     j.Reference,
			Engineer:      j.Engineer,
			ArrivedAt:     j.ArrivedAt,
			DepartedAt:    j.DepartedAt,
			WorkSummary:   j.WorkSummary,
			MaterialsUsed: j.MaterialsUsed,
			Notes:         j.Notes,
			RichNotes:     j.RichNotes,
			FollowUps:     j.FollowUps,
			SignedBy:      j.SignedBy,
			SignedRole:    j.SignedRole,
			Signature:     sig,
			Logo:          logo,
		})
	default:
		return fmt.Errorf("unknown document kind %q (want acceptance or site-report)", j.Kind)
	}
	if err != nil {
		return err
	}

	_, raw, err := dataurl.Parse(doc)
	if err != nil {
		return fmt.Errorf("decode output: %w", err)
	}
	out := opts.outPath
	if out == "" {
		base := j.Reference
		if base == "" {
			base = j.Kind
		}
		out = safeName(base) + ".pdf"
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(raw))
	return nil
}

func resolveLogo(j job) (string, error) {
	if j.LogoFile != "" {
		data, err := os.ReadFile(j.LogoFile)
		if err != nil {
			return "", fmt.Errorf("read logo: %w", err)
		}
		return dataurl.Encode("image/jpeg", data), nil
	}
	return j.Logo, nil
}

func (s jobSignature) toInk() (ink.Signature, error) {
	sig := ink.Signature{Width: s.Width, Height: s.Height}
	for i, flat := range s.Strokes {
		if len(flat)%2 != 0 {
			return ink.Signature{}, fmt.Errorf("signature stroke %d: odd coordinate count %d", i+1, len(flat))
		}
		stroke := make(ink.Stroke, 0, len(flat)/2)
		for p := 0; p < len(flat); p += 2 {
			stroke = append(stroke, coords.Point{X: flat[p], Y: flat[p+1]})
		}
		sig.Strokes = append(sig.Strokes, stroke)
	}
	return sig, nil
}

func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

// stderrLogger prints generation details when -v is set.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields ...observability.Field) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields ...observability.Field)  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields ...observability.Field)  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields ...observability.Field) { logLine("ERROR", msg, fields) }

func (l stderrLogger) With(...observability.Field) observability.Logger { return l }

func logLine(level, msg string, fields []observability.Field) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", level, msg)
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(os.Stderr, sb.String())
}
