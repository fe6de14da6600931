// Package theme manages the class names and palette applied to rendered
// table elements and the action-menu overlay.
package theme

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/penmark/tableedit/model"
)

// Theme holds the class names and palette for table rendering and the
// action menu.
type Theme struct {
	Table           string `yaml:"table"`
	TableCell       string `yaml:"table_cell"`
	TableCellHeader string `yaml:"table_cell_header"`
	TableSelected   string `yaml:"table_selected"`

	MenuOverlay string `yaml:"menu_overlay"`
	MenuButton  string `yaml:"menu_button"`

	HeaderBackground string `yaml:"header_background"`
	HighlightColor   string `yaml:"highlight_color"`
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{
		Table:            "te-table",
		TableCell:        "te-table-cell",
		TableCellHeader:  "te-table-cell-header",
		TableSelected:    "te-table-cell-selected",
		MenuOverlay:      "te-table-actions",
		MenuButton:       "te-table-actions-button",
		HeaderBackground: "#f2f3f5",
		HighlightColor:   "#c9dbf0",
	}
}

// Load reads a YAML theme over the defaults: fields absent from the input
// keep their default values.
func Load(r io.Reader) (*Theme, error) {
	t := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(t); err != nil {
		if err == io.EOF {
			return t, nil
		}
		return nil, fmt.Errorf("decoding theme: %w", err)
	}
	return t, nil
}

// LoadFile reads a YAML theme file over the defaults.
func LoadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening theme file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// RenderConfig returns the cell render configuration for this theme.
func (t *Theme) RenderConfig() model.RenderConfig {
	return model.RenderConfig{
		CellClass:        t.TableCell,
		HeaderClass:      t.TableCellHeader,
		HeaderBackground: t.HeaderBackground,
	}
}

// ParseColor parses a CSS-like color: SVG 1.1 color names, #rgb, or
// #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// IsColor reports whether s parses as a color.
func IsColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

func parseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	var err error
	switch len(s) {
	case 3:
		r, err = hexNibble(s[0])
		if err == nil {
			g, err = hexNibble(s[1])
		}
		if err == nil {
			b, err = hexNibble(s[2])
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		r, err = hexByte(s[0:2])
		if err == nil {
			g, err = hexByte(s[2:4])
		}
		if err == nil {
			b, err = hexByte(s[4:6])
		}
	default:
		err = fmt.Errorf("hex color must have 3 or 6 digits, got %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", "#"+s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", string(c))
}

func hexByte(s string) (uint8, error) {
	hi, err := hexNibble(s[0])
	if err != nil {
		return 0, err
	}
	lo, err := hexNibble(s[1])
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}
