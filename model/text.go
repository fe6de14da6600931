package model

import "github.com/penmark/tableedit/dom"

// ParagraphNode is the block container cell content is wrapped in.
type ParagraphNode struct {
	baseNode
	childKeys
}

// NewParagraphNode creates a writable, empty paragraph.
func NewParagraphNode(key NodeKey) *ParagraphNode {
	return &ParagraphNode{baseNode: baseNode{key: key, writable: true}}
}

func (p *ParagraphNode) Kind() NodeKind { return KindParagraph }

func (p *ParagraphNode) Clone() Node {
	out := *p
	out.childKeys = p.childKeys.clone()
	out.writable = true
	return &out
}

func (p *ParagraphNode) SetChildKeys(keys []NodeKey) error {
	if !p.writable {
		return ErrReadOnly
	}
	p.keys = keys
	return nil
}

// Render produces the paragraph's live element.
func (p *ParagraphNode) Render() *dom.Element {
	return dom.NewElement("p")
}

// TextNode is a run of plain text.
type TextNode struct {
	baseNode
	text string
}

// NewTextNode creates a writable text node.
func NewTextNode(key NodeKey, text string) *TextNode {
	return &TextNode{baseNode: baseNode{key: key, writable: true}, text: text}
}

func (t *TextNode) Kind() NodeKind { return KindText }

func (t *TextNode) Clone() Node {
	out := *t
	out.writable = true
	return &out
}

// Text returns the text content.
func (t *TextNode) Text() string { return t.text }

// SetText replaces the text content.
func (t *TextNode) SetText(text string) error {
	if !t.writable {
		return ErrReadOnly
	}
	t.text = text
	return nil
}

// Render produces the text node's element.
func (t *TextNode) Render() *dom.Element {
	return dom.NewText(t.text)
}

// LineBreakNode is an explicit line break.
type LineBreakNode struct {
	baseNode
}

// NewLineBreakNode creates a writable line break.
func NewLineBreakNode(key NodeKey) *LineBreakNode {
	return &LineBreakNode{baseNode: baseNode{key: key, writable: true}}
}

func (l *LineBreakNode) Kind() NodeKind { return KindLineBreak }

func (l *LineBreakNode) Clone() Node {
	out := *l
	out.writable = true
	return &out
}

// Render produces the line break's element.
func (l *LineBreakNode) Render() *dom.Element {
	return dom.NewElement("br")
}
