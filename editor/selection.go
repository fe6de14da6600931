package editor

import (
	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/model"
)

// Selection describes what the user currently has selected. The concrete
// types form a closed set.
type Selection interface {
	isSelection()
}

// RangeSelection is a caret or text-range selection anchored at a node.
type RangeSelection struct {
	AnchorKey model.NodeKey
	FocusKey  model.NodeKey
}

func (RangeSelection) isSelection() {}

// GridSelection is a rectangular multi-cell selection over a table. Row and
// column bounds are inclusive.
type GridSelection struct {
	TableKey      model.NodeKey
	AnchorCellKey model.NodeKey

	FromRow    int
	ToRow      int
	FromColumn int
	ToColumn   int
}

func (GridSelection) isSelection() {}

// Rows returns the number of selected rows.
func (s GridSelection) Rows() int { return s.ToRow - s.FromRow + 1 }

// Columns returns the number of selected columns.
func (s GridSelection) Columns() int { return s.ToColumn - s.FromColumn + 1 }

// Selection returns the current selection, or nil when nothing is
// selected.
func (ed *Editor) Selection() Selection { return ed.selection }

// SetSelection replaces the current selection. A grid selection applies
// the highlight class to every covered cell element; any previous grid
// highlight is cleared first. Update listeners fire so overlays tracking
// the selection can re-resolve.
func (ed *Editor) SetSelection(sel Selection) {
	ed.clearHighlight()
	ed.selection = sel
	if grid, ok := sel.(GridSelection); ok {
		ed.applyHighlight(grid)
	}
	ed.fireUpdateListeners()
}

// ClearGridHighlight removes any active grid highlight and collapses a
// grid selection to a range selection on its anchor cell.
func (ed *Editor) ClearGridHighlight() {
	grid, ok := ed.selection.(GridSelection)
	if !ok {
		ed.clearHighlight()
		return
	}
	ed.clearHighlight()
	ed.selection = RangeSelection{AnchorKey: grid.AnchorCellKey, FocusKey: grid.AnchorCellKey}
}

func (ed *Editor) applyHighlight(grid GridSelection) {
	if ed.highlightClass == "" && ed.highlightColor == "" {
		return
	}
	for row := grid.FromRow; row <= grid.ToRow; row++ {
		for col := grid.FromColumn; col <= grid.ToColumn; col++ {
			cell, err := ed.CellAt(grid.TableKey, row, col)
			if err != nil {
				continue
			}
			if el, ok := ed.elements[cell.Key()]; ok {
				el.AddClass(ed.highlightClass)
				if ed.highlightColor != "" {
					el.SetStyle("background-color", ed.highlightColor)
				}
				ed.highlighted = append(ed.highlighted, cell.Key())
			}
		}
	}
}

func (ed *Editor) clearHighlight() {
	for _, key := range ed.highlighted {
		el, ok := ed.elements[key]
		if !ok {
			continue
		}
		el.RemoveClass(ed.highlightClass)
		if ed.highlightColor != "" {
			ed.restoreBackground(key, el)
		}
	}
	ed.highlighted = nil
}

// restoreBackground puts a cell element's background back to what its
// snapshot dictates after the highlight color is lifted.
func (ed *Editor) restoreBackground(key model.NodeKey, el *dom.Element) {
	if n, ok := ed.registry[key]; ok {
		if cell, ok := n.(*model.TableCellNode); ok {
			switch {
			case cell.BackgroundColor() != "":
				el.SetStyle("background-color", cell.BackgroundColor())
				return
			case cell.HasHeader() && ed.renderCfg.HeaderBackground != "":
				el.SetStyle("background-color", ed.renderCfg.HeaderBackground)
				return
			}
		}
	}
	el.RemoveStyle("background-color")
}
