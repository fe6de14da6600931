package menu

import (
	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/logging"
	"github.com/penmark/tableedit/model"
	"github.com/penmark/tableedit/theme"
)

const (
	// overlayMargin separates the overlay panel from the anchor cell.
	overlayMargin = 5

	// buttonSize is the square trigger button's edge length.
	buttonSize = 20
)

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the diagnostic logger. Default is the no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Menu) { m.logger = l }
}

// WithTheme sets the theme. Default is theme.Default().
func WithTheme(t *theme.Theme) Option {
	return func(m *Menu) { m.theme = t }
}

// Menu is the table action menu: a transient overlay anchored to the
// currently selected cell, exposing row/column insert and delete, header
// toggles, table deletion, and a cell styling form.
//
// Lifecycle: closed -> (Toggle/Open) -> open, positioned -> closed on
// action completion, outside pointer-down, anchor cell change, or the
// selection leaving the editable root. Reopening always starts fresh.
type Menu struct {
	ed     *editor.Editor
	theme  *theme.Theme
	logger logging.Logger

	anchor   model.NodeKey
	open     bool
	position dom.Point

	button  *dom.Element
	overlay *dom.Element

	// Insert counts snapshotted at open time from the grid selection.
	insertRows    int
	insertColumns int

	drafts StyleDrafts

	removeOutside      func()
	removeOverlayStop  func()
	removeUpdateHook   func()
	removeCellMutation func()
}

// New creates a menu bound to the editor and mounts its trigger button
// into the document body. Detach releases every registration.
func New(ed *editor.Editor, opts ...Option) *Menu {
	m := &Menu{
		ed:            ed,
		theme:         theme.Default(),
		logger:        logging.NewNoOpLogger(),
		insertRows:    1,
		insertColumns: 1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.button = dom.NewElement("button")
	m.button.AddClass(m.theme.MenuButton)

	m.removeUpdateHook = ed.RegisterUpdateListener(m.refreshAnchor)
	m.removeCellMutation = ed.RegisterMutationListener(model.KindTableCell, m.onCellMutations)

	m.refreshAnchor()
	return m
}

// Detach closes the menu and releases all registrations. The menu must
// not be used afterwards.
func (m *Menu) Detach() {
	m.Close()
	if m.removeUpdateHook != nil {
		m.removeUpdateHook()
		m.removeUpdateHook = nil
	}
	if m.removeCellMutation != nil {
		m.removeCellMutation()
		m.removeCellMutation = nil
	}
	if m.button.Parent() != nil {
		m.button.Parent().RemoveChild(m.button)
	}
}

// AnchorKey returns the key of the cell the menu is anchored to, or ""
// when no cell is targeted.
func (m *Menu) AnchorKey() model.NodeKey { return m.anchor }

// IsOpen reports whether the overlay is open.
func (m *Menu) IsOpen() bool { return m.open }

// Position returns the overlay's computed position while open.
func (m *Menu) Position() dom.Point { return m.position }

// Overlay returns the overlay panel element, or nil while closed.
func (m *Menu) Overlay() *dom.Element { return m.overlay }

// Button returns the trigger button element.
func (m *Menu) Button() *dom.Element { return m.button }

// InsertRowCount returns the row count snapshotted at open time.
func (m *Menu) InsertRowCount() int { return m.insertRows }

// InsertColumnCount returns the column count snapshotted at open time.
func (m *Menu) InsertColumnCount() int { return m.insertColumns }

// refreshAnchor re-resolves the anchor cell from the live selection. The
// menu hides whenever the selection falls outside the editable root or no
// range or grid selection is active; changing the anchor while open
// force-closes the overlay.
func (m *Menu) refreshAnchor() {
	key := m.resolveAnchor()
	if key == m.anchor {
		return
	}
	if m.open {
		m.Close()
	}
	m.anchor = key
	m.positionButton()
}

func (m *Menu) resolveAnchor() model.NodeKey {
	var anchorKey model.NodeKey
	switch sel := m.ed.Selection().(type) {
	case editor.RangeSelection:
		anchorKey = sel.AnchorKey
	case editor.GridSelection:
		anchorKey = sel.AnchorCellKey
	default:
		return ""
	}
	cell, err := m.ed.NearestCell(anchorKey)
	if err != nil {
		return ""
	}
	if !m.ed.IsAttached(cell.Key()) {
		return ""
	}
	return cell.Key()
}

// positionButton docks the trigger button at the anchor cell's top-right
// corner, or unmounts it when no cell is targeted.
func (m *Menu) positionButton() {
	if m.anchor == "" {
		if m.button.Parent() != nil {
			m.button.Parent().RemoveChild(m.button)
		}
		return
	}
	el, err := m.ed.ElementByKey(m.anchor)
	if err != nil {
		m.logger.Warn("anchor cell projection missing: %v", err)
		return
	}
	doc := m.ed.Doc()
	rect := el.Rect()
	m.button.SetRect(dom.NewRect(
		rect.Right()-buttonSize+doc.ScrollLeft,
		rect.Top()+doc.ScrollTop,
		buttonSize, buttonSize,
	))
	if m.button.Parent() == nil {
		doc.Body().AppendChild(m.button)
	}
}

// Open opens the overlay next to the anchor cell. It returns false when
// no cell is targeted. Insert counts are snapshotted from the active grid
// selection once; they are not live-updated while the menu stays open.
func (m *Menu) Open() bool {
	if m.open {
		return true
	}
	if m.anchor == "" {
		return false
	}
	anchorEl, err := m.ed.ElementByKey(m.anchor)
	if err != nil {
		m.logger.Warn("cannot open menu: %v", err)
		return false
	}

	m.insertRows, m.insertColumns = 1, 1
	if grid, ok := m.ed.Selection().(editor.GridSelection); ok {
		m.insertRows = grid.Rows()
		m.insertColumns = grid.Columns()
	}

	doc := m.ed.Doc()
	rect := anchorEl.Rect()
	m.position = dom.Point{
		X: rect.Right() + overlayMargin + doc.ScrollLeft,
		Y: rect.Top() + doc.ScrollTop,
	}

	m.overlay = dom.NewElement("div")
	m.overlay.AddClass(m.theme.MenuOverlay)
	m.overlay.SetRect(dom.NewRect(m.position.X, m.position.Y, 0, 0))
	doc.Body().AppendChild(m.overlay)

	// Clicks inside the panel never reach the document-scope listener.
	m.removeOverlayStop = doc.AddElementPointerDownListener(m.overlay, func(ev *dom.PointerEvent) {
		ev.StopPropagation()
	})
	m.removeOutside = doc.AddPointerDownListener(func(ev *dom.PointerEvent) {
		if m.button.Contains(ev.Target) {
			return
		}
		m.logger.Debug("outside pointer-down, closing menu")
		m.Close()
	})

	m.open = true
	m.logger.Debug("menu opened at (%g, %g), anchor %s", m.position.X, m.position.Y, m.anchor)
	return true
}

// Close closes the overlay, unregisters the outside-click listeners, and
// resets the style drafts.
func (m *Menu) Close() {
	if !m.open {
		return
	}
	m.open = false
	if m.removeOutside != nil {
		m.removeOutside()
		m.removeOutside = nil
	}
	if m.removeOverlayStop != nil {
		m.removeOverlayStop()
		m.removeOverlayStop = nil
	}
	if m.overlay != nil {
		if m.overlay.Parent() != nil {
			m.overlay.Parent().RemoveChild(m.overlay)
		}
		m.overlay = nil
	}
	m.drafts = StyleDrafts{}
	m.logger.Debug("menu closed")
}

// Toggle opens the menu if closed and closes it if open.
func (m *Menu) Toggle() bool {
	if m.open {
		m.Close()
		return false
	}
	return m.Open()
}

// onCellMutations force-closes the menu when its anchor cell is
// destroyed.
func (m *Menu) onCellMutations(muts map[model.NodeKey]editor.Mutation) {
	if m.anchor == "" {
		return
	}
	if muts[m.anchor] == editor.MutationDestroyed {
		m.Close()
		m.anchor = ""
		m.positionButton()
	}
}

// finish ends an action: the grid highlight is cleared and the menu
// closes whether or not the transaction succeeded.
func (m *Menu) finish(action string, err error) error {
	m.ed.ClearGridHighlight()
	m.Close()
	if err != nil {
		m.logger.Warn("%s failed: %v", action, err)
		return err
	}
	m.logger.Debug("%s done", action)
	return nil
}
