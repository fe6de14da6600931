package tableedit

import (
	"github.com/penmark/tableedit/logging"
	"github.com/penmark/tableedit/theme"
)

// attachOptions holds configuration for attaching the table editing
// surface to a document.
type attachOptions struct {
	theme     *theme.Theme
	themePath string

	logger logging.Logger

	// Markup export
	widthBudget float64

	// Menu wiring
	withMenu bool
}

// defaultAttachOptions returns the default attach options.
func defaultAttachOptions() attachOptions {
	return attachOptions{
		theme:       nil, // nil means theme.Default()
		logger:      logging.NewNoOpLogger(),
		widthBudget: markupWidthBudget,
		withMenu:    true,
	}
}

// clone creates a copy of attachOptions. The theme pointer is shared:
// themes are read-only after construction.
func (o attachOptions) clone() attachOptions {
	return attachOptions{
		theme:       o.theme,
		themePath:   o.themePath,
		logger:      o.logger,
		widthBudget: o.widthBudget,
		withMenu:    o.withMenu,
	}
}
