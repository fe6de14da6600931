package editor

import "github.com/penmark/tableedit/model"

// Txn is an in-progress mutation transaction. All structural and field
// mutations go through it; nothing becomes visible until the enclosing
// Update commits.
type Txn struct {
	ed        *Editor
	pending   map[model.NodeKey]model.Node
	created   map[model.NodeKey]bool
	destroyed map[model.NodeKey]bool
	done      bool
}

func newTxn(ed *Editor) *Txn {
	return &Txn{
		ed:        ed,
		pending:   make(map[model.NodeKey]model.Node),
		created:   make(map[model.NodeKey]bool),
		destroyed: make(map[model.NodeKey]bool),
	}
}

// Latest returns the most recent snapshot for key: the transaction-local
// writable one if present, otherwise the committed one.
func (t *Txn) Latest(key model.NodeKey) (model.Node, error) {
	if t.done {
		return nil, noTransactionError("read")
	}
	if t.destroyed[key] {
		return nil, detachedNodeError("node %q was destroyed in this transaction", key)
	}
	if n, ok := t.pending[key]; ok {
		return n, nil
	}
	return t.ed.Latest(key)
}

// writable returns the transaction-local writable snapshot for n,
// cloning the committed snapshot on first use (copy-on-write).
func (t *Txn) writable(n model.Node) (model.Node, error) {
	if t.done {
		return nil, noTransactionError("mutation")
	}
	if t.destroyed[n.Key()] {
		return nil, detachedNodeError("node %q was destroyed in this transaction", n.Key())
	}
	if p, ok := t.pending[n.Key()]; ok {
		return p, nil
	}
	latest, err := t.Latest(n.Key())
	if err != nil {
		return nil, err
	}
	clone := latest.Clone()
	t.pending[clone.Key()] = clone
	return clone, nil
}

// Writable returns a transaction-local writable snapshot of n, preserving
// its concrete type.
func Writable[T model.Node](t *Txn, n T) (T, error) {
	w, err := t.writable(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return w.(T), nil
}

func (t *Txn) register(n model.Node) {
	t.pending[n.Key()] = n
	t.created[n.Key()] = true
}

// CreateTable creates a detached, empty table.
func (t *Txn) CreateTable() *model.TableNode {
	n := model.NewTableNode(t.ed.newKey())
	t.register(n)
	return n
}

// CreateTableRow creates a detached, empty row.
func (t *Txn) CreateTableRow() *model.TableRowNode {
	n := model.NewTableRowNode(t.ed.newKey())
	t.register(n)
	return n
}

// CreateTableCell creates a detached cell with the given header state.
func (t *Txn) CreateTableCell(state model.HeaderState) *model.TableCellNode {
	n := model.NewTableCellNode(t.ed.newKey(), state)
	t.register(n)
	return n
}

// CreateParagraph creates a detached, empty paragraph.
func (t *Txn) CreateParagraph() *model.ParagraphNode {
	n := model.NewParagraphNode(t.ed.newKey())
	t.register(n)
	return n
}

// CreateText creates a detached text node.
func (t *Txn) CreateText(text string) *model.TextNode {
	n := model.NewTextNode(t.ed.newKey(), text)
	t.register(n)
	return n
}

// CreateLineBreak creates a detached line break.
func (t *Txn) CreateLineBreak() *model.LineBreakNode {
	n := model.NewLineBreakNode(t.ed.newKey())
	t.register(n)
	return n
}

// Append attaches child as the last child of parent.
func (t *Txn) Append(parent model.ContainerNode, child model.Node) error {
	wp, err := t.writable(parent)
	if err != nil {
		return err
	}
	wc, err := t.writable(child)
	if err != nil {
		return err
	}
	if err := wc.SetParentKey(parent.Key()); err != nil {
		return err
	}
	container := wp.(model.ContainerNode)
	keys := append(append([]model.NodeKey(nil), container.ChildKeys()...), child.Key())
	return container.SetChildKeys(keys)
}

// AppendToRoot attaches child as the last child of the editable root.
func (t *Txn) AppendToRoot(child model.Node) error {
	root, err := t.Latest(t.ed.rootKey)
	if err != nil {
		return err
	}
	return t.Append(root.(*model.RootNode), child)
}

// Destroy detaches the node from its parent and destroys its whole
// subtree.
func (t *Txn) Destroy(key model.NodeKey) error {
	n, err := t.Latest(key)
	if err != nil {
		return err
	}

	if parentKey := n.ParentKey(); parentKey != "" && !t.destroyed[parentKey] {
		parent, err := t.Latest(parentKey)
		if err == nil {
			if container, ok := parent.(model.ContainerNode); ok {
				wp, err := t.writable(container)
				if err != nil {
					return err
				}
				wc := wp.(model.ContainerNode)
				keys := wc.ChildKeys()
				out := make([]model.NodeKey, 0, len(keys))
				for _, k := range keys {
					if k != key {
						out = append(out, k)
					}
				}
				if err := wc.SetChildKeys(out); err != nil {
					return err
				}
			}
		}
	}
	return t.destroySubtree(key)
}

func (t *Txn) destroySubtree(key model.NodeKey) error {
	n, err := t.Latest(key)
	if err != nil {
		return err
	}
	if container, ok := n.(model.ContainerNode); ok {
		for _, childKey := range container.ChildKeys() {
			if err := t.destroySubtree(childKey); err != nil {
				return err
			}
		}
	}
	t.destroyed[key] = true
	return nil
}
