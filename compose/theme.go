package compose

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fieldops/sitedoc/contentstream"
	"github.com/fieldops/sitedoc/layout"
)

// Theme controls page geometry, type scale, palette and fixed texts of
// generated documents. The zero value is not usable: start from DefaultTheme
// and override fields, or load overrides from YAML with ParseTheme/LoadTheme.
type Theme struct {
	Page        PageTheme    `yaml:"page"`
	Type        TypeTheme    `yaml:"type"`
	Palette     PaletteTheme `yaml:"palette"`
	Placeholder string       `yaml:"placeholder"`
	InkWidth    float64      `yaml:"ink_width"`
}

// PageTheme holds page geometry in points.
type PageTheme struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Margin     float64 `yaml:"margin"`
	LineHeight float64 `yaml:"line_height"`
}

// TypeTheme holds font sizes in points.
type TypeTheme struct {
	Title   float64 `yaml:"title"`
	Name    float64 `yaml:"name"`
	Section float64 `yaml:"section"`
	Body    float64 `yaml:"body"`
	Label   float64 `yaml:"label"`
}

// PaletteTheme holds colors as #RRGGBB hex strings.
type PaletteTheme struct {
	Text      string `yaml:"text"`
	Label     string `yaml:"label"`
	Accent    string `yaml:"accent"`
	BoxFill   string `yaml:"box_fill"`
	BoxStroke string `yaml:"box_stroke"`
	Ink       string `yaml:"ink"`
}

// DefaultTheme returns the built-in A4 portrait theme.
func DefaultTheme() Theme {
	return Theme{
		Page: PageTheme{Width: 595.28, Height: 841.89, Margin: 50, LineHeight: 1.35},
		Type: TypeTheme{Title: 18, Name: 14, Section: 12, Body: 10, Label: 7.5},
		Palette: PaletteTheme{
			Text:      "#212126",
			Label:     "#73737A",
			Accent:    "#1A5299",
			BoxFill:   "#F7F7F7",
			BoxStroke: "#9E9EA6",
			Ink:       "#1A1F61",
		},
		Placeholder: "Not provided",
		InkWidth:    1.5,
	}
}

// ParseTheme unmarshals YAML overrides on top of the default theme, so a
// theme file only needs the fields it changes.
func ParseTheme(data []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	if _, err := t.layoutOptions(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadTheme reads a YAML theme file, merging it over the defaults.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	return ParseTheme(data)
}

// layoutOptions maps the theme onto layout engine options.
func (t Theme) layoutOptions() ([]layout.Option, error) {
	colors := layout.DefaultColors()
	fields := []struct {
		name string
		hex  string
		dst  *contentstream.RGB
	}{
		{"palette.text", t.Palette.Text, &colors.Text},
		{"palette.label", t.Palette.Label, &colors.Label},
		{"palette.accent", t.Palette.Accent, &colors.Accent},
		{"palette.box_fill", t.Palette.BoxFill, &colors.BoxFill},
		{"palette.box_stroke", t.Palette.BoxStroke, &colors.BoxStroke},
		{"palette.ink", t.Palette.Ink, &colors.Ink},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		rgb, err := parseHexColor(f.hex)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = rgb
	}
	return []layout.Option{
		layout.WithPageSize(t.Page.Width, t.Page.Height),
		layout.WithMargin(t.Page.Margin),
		layout.WithLineHeight(t.Page.LineHeight),
		layout.WithSizes(layout.Sizes{
			Title:   t.Type.Title,
			Name:    t.Type.Name,
			Section: t.Type.Section,
			Body:    t.Type.Body,
			Label:   t.Type.Label,
		}),
		layout.WithColors(colors),
		layout.WithPlaceholder(t.Placeholder),
		layout.WithInkWidth(t.InkWidth),
	}, nil
}

func parseHexColor(s string) (contentstream.RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return contentstream.RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return contentstream.RGB{}, fmt.Errorf("invalid hex color %q", s)
		}
		ch[i] = float64(v) / 255
	}
	return contentstream.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
