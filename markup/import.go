package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/model"
)

// ImportTableMarkup parses HTML from r and imports the first table found
// into the document as a detached table node. The reader is wrapped for
// charset detection and input normalization.
func ImportTableMarkup(t *editor.Txn, r io.Reader) (*model.TableNode, error) {
	nr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(nr)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	tableNode := findElement(doc, "table")
	if tableNode == nil {
		return nil, fmt.Errorf("no table element in markup")
	}
	return ImportTable(t, tableNode)
}

// ImportTable converts a parsed <table> element into a table node with its
// rows and cells.
func ImportTable(t *editor.Txn, n *html.Node) (*model.TableNode, error) {
	if n.Type != html.ElementNode || n.Data != "table" {
		return nil, fmt.Errorf("expected table element, got %q", n.Data)
	}
	table := t.CreateTable()
	for _, tr := range findAllElements(n, "tr") {
		row, err := ImportRow(t, tr)
		if err != nil {
			return nil, err
		}
		if err := t.Append(table, row); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ImportRow converts a parsed <tr> element into a row node with its cells.
func ImportRow(t *editor.Txn, n *html.Node) (*model.TableRowNode, error) {
	if n.Type != html.ElementNode || n.Data != "tr" {
		return nil, fmt.Errorf("expected tr element, got %q", n.Data)
	}
	row := t.CreateTableRow()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "td" && c.Data != "th" {
			continue
		}
		cell, err := ImportCell(t, c)
		if err != nil {
			return nil, err
		}
		if err := t.Append(row, cell); err != nil {
			return nil, err
		}
	}
	return row, nil
}

// ImportCell converts a parsed <td> or <th> element into a cell node.
// Header state derives from the tag name. Inline child content is wrapped
// in a paragraph; a lone <br> whose text content is exactly a single
// newline is dropped instead of wrapped, so converted cells don't start
// with a spurious empty paragraph.
func ImportCell(t *editor.Txn, n *html.Node) (*model.TableCellNode, error) {
	if n.Type != html.ElementNode || (n.Data != "td" && n.Data != "th") {
		return nil, fmt.Errorf("expected td or th element, got %q", n.Data)
	}

	state := model.HeaderNone
	if n.Data == "th" {
		state = model.HeaderRow
	}
	cell := t.CreateTableCell(state)

	if err := applyCellAttrs(t, cell, n); err != nil {
		return nil, err
	}

	if isLoneNewlineBreak(n) {
		return cell, nil
	}

	var inlineRun []model.Node
	flushRun := func() error {
		if len(inlineRun) == 0 {
			return nil
		}
		para := t.CreateParagraph()
		for _, child := range inlineRun {
			if err := t.Append(para, child); err != nil {
				return err
			}
		}
		inlineRun = nil
		return t.Append(cell, para)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			inlineRun = append(inlineRun, t.CreateText(c.Data))
		case c.Type == html.ElementNode && c.Data == "br":
			inlineRun = append(inlineRun, t.CreateLineBreak())
		case c.Type == html.ElementNode && isBlockTag(c.Data):
			if err := flushRun(); err != nil {
				return nil, err
			}
			para := t.CreateParagraph()
			text := getTextContent(c)
			if text != "" {
				if err := t.Append(para, t.CreateText(text)); err != nil {
					return nil, err
				}
			}
			if err := t.Append(cell, para); err != nil {
				return nil, err
			}
		case c.Type == html.ElementNode:
			// Unknown inline element: keep its text.
			if text := getTextContent(c); strings.TrimSpace(text) != "" {
				inlineRun = append(inlineRun, t.CreateText(text))
			}
		}
	}
	if err := flushRun(); err != nil {
		return nil, err
	}
	return cell, nil
}

// isLoneNewlineBreak reports whether the cell's only element child is a
// <br> and its whole text content is exactly one newline.
func isLoneNewlineBreak(n *html.Node) bool {
	var elems int
	var br bool
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			elems++
			br = c.Data == "br"
		}
	}
	return elems == 1 && br && getTextContent(n) == "\n"
}

func applyCellAttrs(t *editor.Txn, cell *model.TableCellNode, n *html.Node) error {
	w, err := editor.Writable(t, cell)
	if err != nil {
		return err
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "colspan":
			if span, err := strconv.Atoi(attr.Val); err == nil && span > 1 {
				if err := w.SetColSpan(span); err != nil {
					return err
				}
			}
		case "style":
			if err := applyCellStyleAttr(w, attr.Val); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyCellStyleAttr(cell *model.TableCellNode, style string) error {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		var err error
		switch name {
		case "background-color":
			err = cell.SetBackgroundColor(value)
		case "border":
			err = cell.SetBorderStyle(value)
		case "width":
			if px, perr := parsePx(value); perr == nil {
				err = cell.SetWidth(px)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parsePx(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// isBlockTag reports whether a tag converts to block-level content.
func isBlockTag(tag string) bool {
	switch tag {
	case "p", "div", "ul", "ol", "li", "table", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6", "pre":
		return true
	default:
		return false
	}
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAllElements finds every element with the given tag name, in document
// order.
func findAllElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAllElements(c, tag)...)
	}
	return out
}

// getTextContent returns the concatenated text of a node's subtree.
func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(getTextContent(c))
	}
	return sb.String()
}
