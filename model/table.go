package model

import (
	"github.com/penmark/tableedit/dom"
)

// TableNode is a table: an ordered list of row keys.
type TableNode struct {
	baseNode
	childKeys
}

// NewTableNode creates a writable, empty table.
func NewTableNode(key NodeKey) *TableNode {
	return &TableNode{baseNode: baseNode{key: key, writable: true}}
}

func (t *TableNode) Kind() NodeKind { return KindTable }

func (t *TableNode) Clone() Node {
	out := *t
	out.childKeys = t.childKeys.clone()
	out.writable = true
	return &out
}

func (t *TableNode) SetChildKeys(keys []NodeKey) error {
	if !t.writable {
		return ErrReadOnly
	}
	t.keys = keys
	return nil
}

// RowCount returns the number of rows.
func (t *TableNode) RowCount() int { return len(t.keys) }

// Render produces the table's live element.
func (t *TableNode) Render(class string) *dom.Element {
	el := dom.NewElement("table")
	el.AddClass(class)
	return el
}

// TableRowNode is one table row: an ordered list of cell keys.
type TableRowNode struct {
	baseNode
	childKeys

	height    float64
	heightSet bool
}

// NewTableRowNode creates a writable, empty row.
func NewTableRowNode(key NodeKey) *TableRowNode {
	return &TableRowNode{baseNode: baseNode{key: key, writable: true}}
}

func (r *TableRowNode) Kind() NodeKind { return KindTableRow }

func (r *TableRowNode) Clone() Node {
	out := *r
	out.childKeys = r.childKeys.clone()
	out.writable = true
	return &out
}

func (r *TableRowNode) SetChildKeys(keys []NodeKey) error {
	if !r.writable {
		return ErrReadOnly
	}
	r.keys = keys
	return nil
}

// CellCount returns the number of cells in the row.
func (r *TableRowNode) CellCount() int { return len(r.keys) }

// Height returns the explicit pixel height and whether one is set.
func (r *TableRowNode) Height() (float64, bool) { return r.height, r.heightSet }

// SetHeight sets the explicit pixel height.
func (r *TableRowNode) SetHeight(h float64) error {
	if !r.writable {
		return ErrReadOnly
	}
	r.height = h
	r.heightSet = true
	return nil
}

// Render produces the row's live element.
func (r *TableRowNode) Render() *dom.Element {
	el := dom.NewElement("tr")
	if r.heightSet {
		el.SetStyle("height", formatPx(r.height))
	}
	return el
}
