package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/model"
)

// DefaultWidthBudget is the pixel budget shared by a table's columns when
// exporting cells without an explicit width.
const DefaultWidthBudget = 740

// ExportTable renders a committed table as stand-alone styled markup,
// independent of the live theme.
func ExportTable(ed *editor.Editor, tableKey model.NodeKey, widthBudget float64) (string, error) {
	n, err := ed.Latest(tableKey)
	if err != nil {
		return "", err
	}
	table, ok := n.(*model.TableNode)
	if !ok {
		return "", fmt.Errorf("node %q is not a table", tableKey)
	}

	columns := 0
	if rows := table.ChildKeys(); len(rows) > 0 {
		if row, err := ed.NearestRow(rows[0]); err == nil {
			columns = row.CellCount()
		}
	}

	tableEl := dom.NewElement("table")
	tableEl.SetStyle("border-collapse", "collapse")

	for _, rowKey := range table.ChildKeys() {
		row, err := ed.NearestRow(rowKey)
		if err != nil {
			return "", err
		}
		rowEl := row.Render()
		for _, cellKey := range row.ChildKeys() {
			cellEl, err := exportCellElement(ed, cellKey, widthBudget, columns)
			if err != nil {
				return "", err
			}
			rowEl.AppendChild(cellEl)
		}
		tableEl.AppendChild(rowEl)
	}
	return renderHTML(tableEl)
}

// ExportCell renders a single committed cell as stand-alone styled
// markup.
func ExportCell(ed *editor.Editor, cellKey model.NodeKey, widthBudget float64, columns int) (string, error) {
	el, err := exportCellElement(ed, cellKey, widthBudget, columns)
	if err != nil {
		return "", err
	}
	return renderHTML(el)
}

func exportCellElement(ed *editor.Editor, cellKey model.NodeKey, widthBudget float64, columns int) (*dom.Element, error) {
	cell, err := ed.NearestCell(cellKey)
	if err != nil {
		return nil, err
	}
	el := cell.ExportElement(widthBudget, columns)
	for _, childKey := range cell.ChildKeys() {
		childEl, err := exportContentElement(ed, childKey)
		if err != nil {
			return nil, err
		}
		if childEl != nil {
			el.AppendChild(childEl)
		}
	}
	return el, nil
}

func exportContentElement(ed *editor.Editor, key model.NodeKey) (*dom.Element, error) {
	n, err := ed.Latest(key)
	if err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case *model.ParagraphNode:
		el := n.Render()
		for _, childKey := range n.ChildKeys() {
			childEl, err := exportContentElement(ed, childKey)
			if err != nil {
				return nil, err
			}
			if childEl != nil {
				el.AppendChild(childEl)
			}
		}
		return el, nil
	case *model.TextNode:
		return n.Render(), nil
	case *model.LineBreakNode:
		return n.Render(), nil
	default:
		return nil, nil
	}
}

// toHTMLNode converts an element subtree to x/net/html nodes for
// serialization.
func toHTMLNode(el *dom.Element) *html.Node {
	if el.IsText() {
		return &html.Node{Type: html.TextNode, Data: el.Text}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag(),
		DataAtom: atom.Lookup([]byte(el.Tag())),
	}
	if cls := el.ClassAttr(); cls != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: cls})
	}
	for _, a := range el.Attrs() {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	if style := el.StyleAttr(); style != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: style})
	}
	for _, c := range el.Children() {
		n.AppendChild(toHTMLNode(c))
	}
	return n
}

func renderHTML(el *dom.Element) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, toHTMLNode(el)); err != nil {
		return "", fmt.Errorf("rendering markup: %w", err)
	}
	return sb.String(), nil
}
