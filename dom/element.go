package dom

import "strings"

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// styleProp is a single inline style declaration. Declarations keep
// insertion order so serialized markup is deterministic.
type styleProp struct {
	name  string
	value string
}

// Element is one node of the rendered projection: a tag with attributes,
// inline styles, class list, children, and a layout bounding box. A text
// node is an Element with an empty tag and non-empty Text.
type Element struct {
	tag     string
	Text    string
	attrs   []Attr
	classes []string
	styles  []styleProp
	parent  *Element
	kids    []*Element
	rect    Rect
}

// NewElement creates an element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{tag: strings.ToLower(tag)}
}

// NewText creates a text node.
func NewText(text string) *Element {
	return &Element{Text: text}
}

// Tag returns the element's tag name, or "" for a text node.
func (e *Element) Tag() string { return e.tag }

// IsText returns true for text nodes.
func (e *Element) IsText() bool { return e.tag == "" }

// SetAttr sets an attribute, replacing any previous value.
func (e *Element) SetAttr(key, value string) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Key: key, Value: value})
}

// Attr returns an attribute value and whether it was set.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes in insertion order.
func (e *Element) Attrs() []Attr { return e.attrs }

// AddClass appends a class name if not already present.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass deletes a class name if present.
func (e *Element) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// ClassAttr returns the space-joined class list.
func (e *Element) ClassAttr() string { return strings.Join(e.classes, " ") }

// SetStyle sets an inline style property, replacing any previous value.
func (e *Element) SetStyle(name, value string) {
	for i := range e.styles {
		if e.styles[i].name == name {
			e.styles[i].value = value
			return
		}
	}
	e.styles = append(e.styles, styleProp{name: name, value: value})
}

// Style returns an inline style property value, or "" when unset.
func (e *Element) Style(name string) string {
	for _, s := range e.styles {
		if s.name == name {
			return s.value
		}
	}
	return ""
}

// RemoveStyle deletes an inline style property.
func (e *Element) RemoveStyle(name string) {
	for i := range e.styles {
		if e.styles[i].name == name {
			e.styles = append(e.styles[:i], e.styles[i+1:]...)
			return
		}
	}
}

// StyleAttr returns the serialized style attribute in declaration order.
func (e *Element) StyleAttr() string {
	var sb strings.Builder
	for i, s := range e.styles {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(s.name)
		sb.WriteString(": ")
		sb.WriteString(s.value)
	}
	return sb.String()
}

// AppendChild adds a child element, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.kids = append(e.kids, child)
}

// RemoveChild detaches a child element. It is a no-op if child is not a
// direct child of e.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.kids {
		if c == child {
			e.kids = append(e.kids[:i], e.kids[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ReplaceChild swaps oldChild for newChild in place, preserving position.
func (e *Element) ReplaceChild(oldChild, newChild *Element) bool {
	for i, c := range e.kids {
		if c == oldChild {
			if newChild.parent != nil {
				newChild.parent.RemoveChild(newChild)
			}
			e.kids[i] = newChild
			newChild.parent = e
			oldChild.parent = nil
			return true
		}
	}
	return false
}

// Children returns the child elements in order.
func (e *Element) Children() []*Element { return e.kids }

// Parent returns the parent element, or nil for a detached root.
func (e *Element) Parent() *Element { return e.parent }

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// SetRect sets the layout bounding box.
func (e *Element) SetRect(r Rect) { e.rect = r }

// Rect returns the layout bounding box.
func (e *Element) Rect() Rect { return e.rect }

// TextContent returns the concatenated text of the element and its
// descendants.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.Text
	}
	var sb strings.Builder
	for _, c := range e.kids {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}
