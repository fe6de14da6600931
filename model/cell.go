package model

import (
	"strconv"

	"github.com/penmark/tableedit/dom"
)

// Edge identifies one border edge of a cell.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// renderEdges is the fixed iteration order for per-edge styles.
var renderEdges = [...]Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "unknown"
	}
}

// RenderConfig carries the theme class names and palette a cell applies
// when rendering.
type RenderConfig struct {
	CellClass   string
	HeaderClass string

	// HeaderBackground shades header cells without an explicit background
	// of their own. Empty means no shading.
	HeaderBackground string
}

const (
	// exportMinWidth is the minimum column width, in pixels, used when a
	// cell has no explicit width during stand-alone export.
	exportMinWidth = 90

	// exportBorder is the fixed border used for stand-alone export,
	// independent of any live theme.
	exportBorder = "1px solid black"

	// exportHeaderBackground shades header cells in exported markup.
	exportHeaderBackground = "#f2f3f5"

	// cellCornerRadius is applied whenever a cell has a styled top edge.
	cellCornerRadius = "3px"
)

// TableCellNode represents one table cell: header classification, column
// span, optional pixel width, and background/border styling. Snapshots are
// immutable once sealed; mutations require a writable clone obtained inside
// a transaction.
type TableCellNode struct {
	baseNode
	childKeys

	headerState     HeaderState
	colSpan         int
	width           float64
	widthSet        bool
	backgroundColor string
	borderStyle     string
	borderEdges     map[Edge]string
}

// NewTableCellNode creates a writable cell with the given header state and
// a column span of 1.
func NewTableCellNode(key NodeKey, state HeaderState) *TableCellNode {
	return &TableCellNode{
		baseNode:    baseNode{key: key, writable: true},
		headerState: state,
		colSpan:     1,
	}
}

func (c *TableCellNode) Kind() NodeKind { return KindTableCell }

func (c *TableCellNode) Clone() Node {
	out := *c
	out.childKeys = c.childKeys.clone()
	if c.borderEdges != nil {
		out.borderEdges = make(map[Edge]string, len(c.borderEdges))
		for k, v := range c.borderEdges {
			out.borderEdges[k] = v
		}
	}
	out.writable = true
	return &out
}

func (c *TableCellNode) SetChildKeys(keys []NodeKey) error {
	if !c.writable {
		return ErrReadOnly
	}
	c.keys = keys
	return nil
}

// HeaderState returns the cell's header classification.
func (c *TableCellNode) HeaderState() HeaderState { return c.headerState }

// HasHeader reports whether the cell is a header of any kind.
func (c *TableCellNode) HasHeader() bool { return c.headerState != HeaderNone }

// ToggleHeader flips the given header part on a writable snapshot.
// Toggling the same part twice restores the original state.
func (c *TableCellNode) ToggleHeader(part HeaderState) error {
	if !c.writable {
		return ErrReadOnly
	}
	c.headerState = c.headerState.Toggle(part)
	return nil
}

// ColSpan returns the column span (always >= 1).
func (c *TableCellNode) ColSpan() int { return c.colSpan }

// SetColSpan sets the column span. Values below 1 are clamped to 1.
func (c *TableCellNode) SetColSpan(span int) error {
	if !c.writable {
		return ErrReadOnly
	}
	if span < 1 {
		span = 1
	}
	c.colSpan = span
	return nil
}

// Width returns the explicit pixel width and whether one is set.
func (c *TableCellNode) Width() (float64, bool) { return c.width, c.widthSet }

// SetWidth sets the explicit pixel width.
func (c *TableCellNode) SetWidth(w float64) error {
	if !c.writable {
		return ErrReadOnly
	}
	c.width = w
	c.widthSet = true
	return nil
}

// BackgroundColor returns the background color, or "" when unset.
func (c *TableCellNode) BackgroundColor() string { return c.backgroundColor }

// SetBackgroundColor sets the background color.
func (c *TableCellNode) SetBackgroundColor(color string) error {
	if !c.writable {
		return ErrReadOnly
	}
	c.backgroundColor = color
	return nil
}

// BorderStyle returns the border shorthand, or "" when unset.
func (c *TableCellNode) BorderStyle() string { return c.borderStyle }

// SetBorderStyle sets the border shorthand applied to all edges.
func (c *TableCellNode) SetBorderStyle(style string) error {
	if !c.writable {
		return ErrReadOnly
	}
	c.borderStyle = style
	return nil
}

// BorderEdge returns the per-edge border override, or "" when unset.
func (c *TableCellNode) BorderEdge(edge Edge) string {
	return c.borderEdges[edge]
}

// SetBorderEdge sets a per-edge border override. An empty style removes
// the override for that edge.
func (c *TableCellNode) SetBorderEdge(edge Edge, style string) error {
	if !c.writable {
		return ErrReadOnly
	}
	if style == "" {
		delete(c.borderEdges, edge)
		return nil
	}
	if c.borderEdges == nil {
		c.borderEdges = make(map[Edge]string, 4)
	}
	c.borderEdges[edge] = style
	return nil
}

// Capability flags inherited from the host framework. A cell keeps its
// structure during editing: it never collapses at the start of a
// selection, is never emptied, and cannot be indented.
func (c *TableCellNode) CanBeEmpty() bool      { return false }
func (c *TableCellNode) CollapseAtStart() bool { return false }
func (c *TableCellNode) CanIndent() bool       { return false }

// Render produces the cell's live element: a th or td chosen by header
// state, with width, background, and border styles applied when set, plus
// theme class names.
func (c *TableCellNode) Render(cfg RenderConfig) *dom.Element {
	tag := "td"
	if c.HasHeader() {
		tag = "th"
	}
	el := dom.NewElement(tag)
	el.AddClass(cfg.CellClass)
	if c.HasHeader() {
		el.AddClass(cfg.HeaderClass)
	}
	if c.colSpan > 1 {
		el.SetAttr("colspan", strconv.Itoa(c.colSpan))
	}
	if c.widthSet {
		el.SetStyle("width", formatPx(c.width))
	}
	switch {
	case c.backgroundColor != "":
		el.SetStyle("background-color", c.backgroundColor)
	case c.HasHeader() && cfg.HeaderBackground != "":
		el.SetStyle("background-color", cfg.HeaderBackground)
	}
	if c.borderStyle != "" {
		el.SetStyle("border", c.borderStyle)
	}
	for _, edge := range renderEdges {
		if s, ok := c.borderEdges[edge]; ok {
			el.SetStyle("border-"+edge.String(), s)
		}
	}
	// A styled top edge rounds the cell's corners.
	if _, ok := c.borderEdges[EdgeTop]; ok {
		el.SetStyle("border-radius", cellCornerRadius)
	}
	return el
}

// ExportElement produces a stand-alone styled element for markup export,
// independent of the live theme: fixed 1px black border, computed width
// when none is set, and header background shading.
//
// widthBudget is the pixel budget shared by all columns of the table;
// columns is the table's column count.
func (c *TableCellNode) ExportElement(widthBudget float64, columns int) *dom.Element {
	tag := "td"
	if c.HasHeader() {
		tag = "th"
	}
	el := dom.NewElement(tag)
	if c.colSpan > 1 {
		el.SetAttr("colspan", strconv.Itoa(c.colSpan))
	}

	width := c.width
	if !c.widthSet {
		width = exportMinWidth
		if columns > 0 && widthBudget/float64(columns) > exportMinWidth {
			width = widthBudget / float64(columns)
		}
	}
	el.SetStyle("border", exportBorder)
	el.SetStyle("width", formatPx(width))
	el.SetStyle("vertical-align", "top")
	el.SetStyle("text-align", "start")

	switch {
	case c.backgroundColor != "":
		el.SetStyle("background-color", c.backgroundColor)
	case c.HasHeader():
		el.SetStyle("background-color", exportHeaderBackground)
	}
	return el
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
