package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/penmark/tableedit/theme"
)

// BorderDraft is one edge of the styling form: width in pixels, a CSS
// line style, and a color. A zero draft leaves the edge untouched when
// applied.
type BorderDraft struct {
	Width float64
	Style string
	Color string
}

// IsZero reports whether the draft carries no input.
func (d BorderDraft) IsZero() bool {
	return d.Width == 0 && d.Style == "" && d.Color == ""
}

// compose renders the draft as a CSS border shorthand.
func (d BorderDraft) compose() string {
	parts := make([]string, 0, 3)
	if d.Width > 0 {
		parts = append(parts, strconv.FormatFloat(d.Width, 'f', -1, 64)+"px")
	}
	if d.Style != "" {
		parts = append(parts, d.Style)
	}
	if d.Color != "" {
		parts = append(parts, d.Color)
	}
	return strings.Join(parts, " ")
}

// validate rejects a non-empty draft whose color does not parse.
func (d BorderDraft) validate() error {
	if d.IsZero() || d.Color == "" {
		return nil
	}
	if !theme.IsColor(d.Color) {
		return fmt.Errorf("invalid border color %q", d.Color)
	}
	return nil
}

// StyleDrafts holds the styling form's pending input. Drafts reset
// whenever the menu closes.
type StyleDrafts struct {
	Background string

	Top    BorderDraft
	Right  BorderDraft
	Bottom BorderDraft
	Left   BorderDraft
}

// Drafts returns the current styling form input.
func (m *Menu) Drafts() StyleDrafts { return m.drafts }

// SetBackgroundDraft stages a background color for the anchor cell.
func (m *Menu) SetBackgroundDraft(color string) { m.drafts.Background = color }

// SetTopDraft stages a top-edge border for the anchor cell.
func (m *Menu) SetTopDraft(d BorderDraft) { m.drafts.Top = d }

// SetRightDraft stages a right-edge border for the anchor cell.
func (m *Menu) SetRightDraft(d BorderDraft) { m.drafts.Right = d }

// SetBottomDraft stages a bottom-edge border for the anchor cell.
func (m *Menu) SetBottomDraft(d BorderDraft) { m.drafts.Bottom = d }

// SetLeftDraft stages a left-edge border for the anchor cell.
func (m *Menu) SetLeftDraft(d BorderDraft) { m.drafts.Left = d }
