package compose

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldops/sitedoc/contentstream"
)

func TestParseThemeMergesOverDefaults(t *testing.T) {
	src := `
page:
  margin: 36
type:
  body: 9
palette:
  accent: "#CC0000"
placeholder: "n/a"
`
	theme, err := ParseTheme([]byte(src))
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if theme.Page.Margin != 36 {
		t.Errorf("margin = %v, want 36", theme.Page.Margin)
	}
	if theme.Type.Body != 9 {
		t.Errorf("body = %v, want 9", theme.Type.Body)
	}
	if theme.Palette.Accent != "#CC0000" {
		t.Errorf("accent = %q", theme.Palette.Accent)
	}
	if theme.Placeholder != "n/a" {
		t.Errorf("placeholder = %q", theme.Placeholder)
	}

	// Untouched fields keep their defaults.
	def := DefaultTheme()
	if theme.Page.Width != def.Page.Width || theme.Type.Title != def.Type.Title {
		t.Errorf("defaults not preserved: %+v", theme)
	}
	if theme.Palette.Ink != def.Palette.Ink {
		t.Errorf("ink = %q, want default %q", theme.Palette.Ink, def.Palette.Ink)
	}
}

func TestParseThemeRejectsBadYAML(t *testing.T) {
	if _, err := ParseTheme([]byte("page: [nope")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestParseThemeRejectsBadColor(t *testing.T) {
	_, err := ParseTheme([]byte("palette:\n  accent: \"#GG0000\"\n"))
	if err == nil {
		t.Fatal("expected error for invalid hex color")
	}
	if !strings.Contains(err.Error(), "palette.accent") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("page:\n  margin: 42\n"), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.Page.Margin != 42 {
		t.Errorf("margin = %v, want 42", theme.Page.Margin)
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    contentstream.RGB
		wantErr bool
	}{
		{in: "#FFFFFF", want: contentstream.RGB{R: 1, G: 1, B: 1}},
		{in: "000000", want: contentstream.RGB{}},
		{in: "#1A5299", want: contentstream.RGB{R: 26.0 / 255, G: 82.0 / 255, B: 153.0 / 255}},
		{in: "#FFF", wantErr: true},
		{in: "#ZZZZZZ", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseHexColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", tt.in, err)
			continue
		}
		if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
			t.Errorf("parseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestThemeLayoutOptions(t *testing.T) {
	opts, err := DefaultTheme().layoutOptions()
	if err != nil {
		t.Fatalf("layoutOptions: %v", err)
	}
	// Page size, margin, line height, sizes, colors, placeholder, ink width.
	if len(opts) != 7 {
		t.Errorf("option count = %d, want 7", len(opts))
	}

	bad := DefaultTheme()
	bad.Palette.BoxFill = "#nope"
	if _, err := bad.layoutOptions(); err == nil {
		t.Fatal("expected error for bad palette entry")
	}
}
