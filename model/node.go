package model

import "errors"

// NodeKey is the stable identity of a node within the document tree.
// Cloning a node for mutation preserves its key; the editor registry maps
// each key to the latest committed snapshot.
type NodeKey string

// NodeKind identifies the concrete type of a node. The set is closed:
// consumers switch over kinds instead of type-asserting against unknown
// implementations.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindRoot
	KindParagraph
	KindText
	KindLineBreak
	KindTable
	KindTableRow
	KindTableCell
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindParagraph:
		return "Paragraph"
	case KindText:
		return "Text"
	case KindLineBreak:
		return "LineBreak"
	case KindTable:
		return "Table"
	case KindTableRow:
		return "TableRow"
	case KindTableCell:
		return "TableCell"
	default:
		return "Unknown"
	}
}

// ErrReadOnly is returned by setters invoked on a sealed (committed)
// snapshot. Mutations must go through a writable clone obtained inside a
// transaction.
var ErrReadOnly = errors.New("node snapshot is read-only")

// Node is the interface implemented by all document nodes.
type Node interface {
	Key() NodeKey
	Kind() NodeKind

	// ParentKey returns the key of the parent node, or "" for a detached
	// or root node.
	ParentKey() NodeKey

	// Writable reports whether this snapshot accepts mutations.
	Writable() bool

	// Clone returns a writable copy sharing the same key. Unchanged
	// reference fields are deep-copied where later mutation could alias
	// the committed snapshot.
	Clone() Node

	// Seal marks the snapshot immutable. Called by the editor on commit.
	Seal()

	// SetParentKey reparents the node. Requires a writable snapshot.
	SetParentKey(parent NodeKey) error
}

// ContainerNode is implemented by nodes that hold ordered children by key.
type ContainerNode interface {
	Node
	ChildKeys() []NodeKey
	SetChildKeys(keys []NodeKey) error
}

// baseNode carries identity and snapshot state shared by all node types.
type baseNode struct {
	key      NodeKey
	parent   NodeKey
	writable bool
}

func (b *baseNode) Key() NodeKey       { return b.key }
func (b *baseNode) ParentKey() NodeKey { return b.parent }
func (b *baseNode) Writable() bool     { return b.writable }
func (b *baseNode) Seal()              { b.writable = false }

func (b *baseNode) SetParentKey(parent NodeKey) error {
	if !b.writable {
		return ErrReadOnly
	}
	b.parent = parent
	return nil
}

// childKeys is the shared child-list implementation for container nodes.
type childKeys struct {
	keys []NodeKey
}

func (c *childKeys) ChildKeys() []NodeKey { return c.keys }

func (c *childKeys) clone() childKeys {
	out := childKeys{}
	if c.keys != nil {
		out.keys = make([]NodeKey, len(c.keys))
		copy(out.keys, c.keys)
	}
	return out
}

// RootNode is the editable root of the document.
type RootNode struct {
	baseNode
	childKeys
}

// NewRootNode creates a writable root node.
func NewRootNode(key NodeKey) *RootNode {
	return &RootNode{baseNode: baseNode{key: key, writable: true}}
}

func (n *RootNode) Kind() NodeKind { return KindRoot }

func (n *RootNode) Clone() Node {
	out := *n
	out.childKeys = n.childKeys.clone()
	out.writable = true
	return &out
}

func (n *RootNode) SetChildKeys(keys []NodeKey) error {
	if !n.writable {
		return ErrReadOnly
	}
	n.keys = keys
	return nil
}
