// Package tableedit provides a fluent API for attaching a table editing
// surface to a document: a node model with header-aware table cells, an
// action menu overlay, and HTML table import/export.
//
// Basic usage:
//
//	surface, err := tableedit.Attach(doc).Build()
//	if err != nil {
//	    // handle error
//	}
//	defer surface.Detach()
//
// With options:
//
//	surface, err := tableedit.Attach(doc).
//	    ThemeFile("theme.yaml").
//	    Logger(logger).
//	    Build()
//
// For advanced use cases, the lower-level editor and menu packages are
// also available.
package tableedit

import (
	"strings"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/logging"
	"github.com/penmark/tableedit/markup"
	"github.com/penmark/tableedit/menu"
	"github.com/penmark/tableedit/model"
	"github.com/penmark/tableedit/theme"
)

// markupWidthBudget is the default pixel budget shared by the columns of
// an exported table.
const markupWidthBudget = markup.DefaultWidthBudget

// Attach starts fluent configuration of a table editing surface for the
// given document. Build is the terminal operation.
//
// Example:
//
//	surface, err := tableedit.Attach(doc).Build()
func Attach(doc *dom.Document) *Builder {
	return &Builder{
		doc:     doc,
		options: defaultAttachOptions(),
	}
}

// Builder configures a Surface before construction. Each method returns a
// new Builder; the zero-cost copies make it safe to fork a partially
// configured builder.
type Builder struct {
	doc     *dom.Document
	options attachOptions
}

// Theme sets the theme. The default is theme.Default().
func (b *Builder) Theme(t *theme.Theme) *Builder {
	opts := b.options.clone()
	opts.theme = t
	opts.themePath = ""
	return &Builder{doc: b.doc, options: opts}
}

// ThemeFile loads the theme from a YAML file at Build time.
func (b *Builder) ThemeFile(path string) *Builder {
	opts := b.options.clone()
	opts.theme = nil
	opts.themePath = path
	return &Builder{doc: b.doc, options: opts}
}

// Logger sets the diagnostic logger for the editor and the menu. The
// default discards everything.
func (b *Builder) Logger(l logging.Logger) *Builder {
	opts := b.options.clone()
	opts.logger = l
	return &Builder{doc: b.doc, options: opts}
}

// WidthBudget sets the pixel budget shared by the columns of exported
// tables.
func (b *Builder) WidthBudget(px float64) *Builder {
	opts := b.options.clone()
	opts.widthBudget = px
	return &Builder{doc: b.doc, options: opts}
}

// WithoutMenu skips the action menu. The editor and markup conversion
// remain available.
func (b *Builder) WithoutMenu() *Builder {
	opts := b.options.clone()
	opts.withMenu = false
	return &Builder{doc: b.doc, options: opts}
}

// Build constructs the surface: the editor mounted into the document
// body, plus the action menu unless disabled.
func (b *Builder) Build() (*Surface, error) {
	opts := b.options

	t := opts.theme
	if opts.themePath != "" {
		loaded, err := theme.LoadFile(opts.themePath)
		if err != nil {
			return nil, err
		}
		t = loaded
	}
	if t == nil {
		t = theme.Default()
	}

	ed := editor.New(b.doc,
		editor.WithLogger(opts.logger),
		editor.WithRenderConfig(t.RenderConfig()),
		editor.WithTableClass(t.Table),
		editor.WithHighlightClass(t.TableSelected),
		editor.WithHighlightColor(t.HighlightColor),
	)

	s := &Surface{
		editor:      ed,
		theme:       t,
		widthBudget: opts.widthBudget,
	}
	if opts.withMenu {
		s.menu = menu.New(ed, menu.WithTheme(t), menu.WithLogger(opts.logger))
	}
	return s, nil
}

// Surface is an attached table editing surface.
type Surface struct {
	editor      *editor.Editor
	menu        *menu.Menu
	theme       *theme.Theme
	widthBudget float64
}

// Editor returns the underlying editor.
func (s *Surface) Editor() *editor.Editor { return s.editor }

// Menu returns the action menu, or nil when built without one.
func (s *Surface) Menu() *menu.Menu { return s.menu }

// Theme returns the active theme.
func (s *Surface) Theme() *theme.Theme { return s.theme }

// Detach releases the menu's registrations. The editor's elements stay in
// the document.
func (s *Surface) Detach() {
	if s.menu != nil {
		s.menu.Detach()
	}
}

// ImportTable parses HTML table markup and appends the resulting table to
// the editable root, returning the new table's key.
func (s *Surface) ImportTable(html string) (model.NodeKey, error) {
	var key model.NodeKey
	err := s.editor.Update(func(t *editor.Txn) error {
		table, err := markup.ImportTableMarkup(t, strings.NewReader(html))
		if err != nil {
			return err
		}
		if err := t.AppendToRoot(table); err != nil {
			return err
		}
		key = table.Key()
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// ExportTable serializes the table with the given key to stand-alone
// styled HTML markup.
func (s *Surface) ExportTable(key model.NodeKey) (string, error) {
	return markup.ExportTable(s.editor, key, s.widthBudget)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	surface := tableedit.Must(tableedit.Attach(doc).Build())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
