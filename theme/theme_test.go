package theme

import (
	"image/color"
	"strings"
	"testing"
)

// ============================================================================
// Load Tests
// ============================================================================

func TestLoadOverridesDefaults(t *testing.T) {
	in := strings.NewReader(`
table: my-table
highlight_color: "#336699"
`)
	th, err := Load(in)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if th.Table != "my-table" {
		t.Errorf("Table = %q, want %q", th.Table, "my-table")
	}
	if th.HighlightColor != "#336699" {
		t.Errorf("HighlightColor = %q, want %q", th.HighlightColor, "#336699")
	}
	// Untouched fields keep their defaults.
	if th.TableCell != Default().TableCell {
		t.Errorf("TableCell = %q, want default %q", th.TableCell, Default().TableCell)
	}
	if th.HeaderBackground != "#f2f3f5" {
		t.Errorf("HeaderBackground = %q, want default", th.HeaderBackground)
	}
}

func TestLoadEmptyInputYieldsDefaults(t *testing.T) {
	th, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *th != *Default() {
		t.Errorf("Load(empty) = %+v, want defaults", th)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(strings.NewReader("table: [unclosed")); err == nil {
		t.Fatal("Load() accepted malformed YAML")
	}
}

func TestRenderConfig(t *testing.T) {
	th := Default()
	cfg := th.RenderConfig()
	if cfg.CellClass != th.TableCell {
		t.Errorf("CellClass = %q, want %q", cfg.CellClass, th.TableCell)
	}
	if cfg.HeaderClass != th.TableCellHeader {
		t.Errorf("HeaderClass = %q, want %q", cfg.HeaderClass, th.TableCellHeader)
	}
	if cfg.HeaderBackground != th.HeaderBackground {
		t.Errorf("HeaderBackground = %q, want %q", cfg.HeaderBackground, th.HeaderBackground)
	}
}

// ============================================================================
// Color Tests
// ============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"named color", "red", color.RGBA{0xff, 0, 0, 0xff}, false},
		{"named color mixed case", " Red ", color.RGBA{0xff, 0, 0, 0xff}, false},
		{"six digit hex", "#336699", color.RGBA{0x33, 0x66, 0x99, 0xff}, false},
		{"three digit hex", "#369", color.RGBA{0x33, 0x66, 0x99, 0xff}, false},
		{"uppercase hex", "#ABCDEF", color.RGBA{0xab, 0xcd, 0xef, 0xff}, false},
		{"empty", "", color.RGBA{}, true},
		{"unknown name", "notacolor", color.RGBA{}, true},
		{"bad hex digit", "#zzz", color.RGBA{}, true},
		{"bad hex length", "#1234", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsColor(t *testing.T) {
	if !IsColor("steelblue") {
		t.Error("IsColor rejected a valid SVG color name")
	}
	if IsColor("12px") {
		t.Error("IsColor accepted a length value")
	}
}
