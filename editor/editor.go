package editor

import (
	"strconv"
	"sync/atomic"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/logging"
	"github.com/penmark/tableedit/model"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the diagnostic logger. Default is the no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(ed *Editor) { ed.logger = l }
}

// WithRenderConfig sets the theme classes cells render with.
func WithRenderConfig(cfg model.RenderConfig) Option {
	return func(ed *Editor) { ed.renderCfg = cfg }
}

// WithTableClass sets the class applied to table elements.
func WithTableClass(class string) Option {
	return func(ed *Editor) { ed.tableClass = class }
}

// WithHighlightClass sets the class applied to grid-selected cell
// elements.
func WithHighlightClass(class string) Option {
	return func(ed *Editor) { ed.highlightClass = class }
}

// WithHighlightColor sets an inline background color applied to
// grid-selected cell elements in addition to the highlight class.
func WithHighlightColor(color string) Option {
	return func(ed *Editor) { ed.highlightColor = color }
}

// Editor is the reference host document model: a registry of immutable
// node snapshots keyed by stable node keys, a rendered element projection,
// the current selection, and serialized mutation transactions with
// post-commit mutation triggers.
type Editor struct {
	inUpdate atomic.Bool

	doc    *dom.Document
	rootEl *dom.Element

	registry map[model.NodeKey]model.Node
	elements map[model.NodeKey]*dom.Element
	rootKey  model.NodeKey
	nextKey  int

	selection   Selection
	highlighted []model.NodeKey

	renderCfg      model.RenderConfig
	tableClass     string
	highlightClass string
	highlightColor string

	listeners       []mutationEntry
	updateListeners []updateEntry
	nextListenerID  int

	logger logging.Logger
}

// New creates an editor mounted into the given document. The editable
// root element is appended to the document body.
func New(doc *dom.Document, opts ...Option) *Editor {
	ed := &Editor{
		doc:      doc,
		registry: make(map[model.NodeKey]model.Node),
		elements: make(map[model.NodeKey]*dom.Element),
		logger:   logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(ed)
	}

	root := model.NewRootNode(ed.newKey())
	root.Seal()
	ed.rootKey = root.Key()
	ed.registry[root.Key()] = root

	ed.rootEl = dom.NewElement("div")
	ed.rootEl.AddClass("editor-root")
	doc.Body().AppendChild(ed.rootEl)
	ed.elements[root.Key()] = ed.rootEl

	return ed
}

func (ed *Editor) newKey() model.NodeKey {
	ed.nextKey++
	return model.NodeKey(strconv.Itoa(ed.nextKey))
}

// Doc returns the document the editor is mounted into.
func (ed *Editor) Doc() *dom.Document { return ed.doc }

// RootKey returns the key of the editable root node.
func (ed *Editor) RootKey() model.NodeKey { return ed.rootKey }

// RootElement returns the editable root element.
func (ed *Editor) RootElement() *dom.Element { return ed.rootEl }

// NodeByKey returns the latest committed snapshot for key.
func (ed *Editor) NodeByKey(key model.NodeKey) (model.Node, bool) {
	n, ok := ed.registry[key]
	return n, ok
}

// Latest returns the latest committed snapshot for key, or a
// DetachedNodeErr when the node does not exist.
func (ed *Editor) Latest(key model.NodeKey) (model.Node, error) {
	n, ok := ed.registry[key]
	if !ok {
		return nil, detachedNodeError("node %q is detached", key)
	}
	return n, nil
}

// ElementByKey returns the live rendered element for a node. A node that
// exists in the model but has no element is an invariant violation and
// yields a MissingProjectionErr.
func (ed *Editor) ElementByKey(key model.NodeKey) (*dom.Element, error) {
	if _, ok := ed.registry[key]; !ok {
		return nil, detachedNodeError("node %q is detached", key)
	}
	el, ok := ed.elements[key]
	if !ok {
		return nil, missingProjectionError("no rendered element for node %q", key)
	}
	return el, nil
}

// IsAttached reports whether key resolves to a node reachable from the
// editable root.
func (ed *Editor) IsAttached(key model.NodeKey) bool {
	seen := 0
	for key != "" {
		if key == ed.rootKey {
			return true
		}
		n, ok := ed.registry[key]
		if !ok {
			return false
		}
		key = n.ParentKey()
		seen++
		if seen > len(ed.registry) {
			return false
		}
	}
	return false
}

// Update runs fn inside an atomic mutation transaction. If fn returns an
// error, every pending mutation is discarded and the error is returned;
// nothing partial becomes visible. On success the pending snapshots are
// sealed and swapped into the registry, the element projection is
// re-rendered, and mutation listeners fire.
//
// Update is not reentrant: calling it from inside fn or from a listener
// returns an InternalErr. The editor follows its host document's
// single-threaded event model and is not safe for concurrent use.
func (ed *Editor) Update(fn func(*Txn) error) error {
	if !ed.inUpdate.CompareAndSwap(false, true) {
		return internalError("nested update")
	}
	defer ed.inUpdate.Store(false)

	txn := newTxn(ed)
	err := fn(txn)
	txn.done = true

	if err != nil {
		ed.logger.Debug("transaction aborted: %v", err)
		return err
	}

	muts := make(map[model.NodeKey]Mutation)
	kinds := make(map[model.NodeKey]model.NodeKind)

	for key := range txn.destroyed {
		if n, ok := ed.registry[key]; ok {
			kinds[key] = n.Kind()
			muts[key] = MutationDestroyed
			delete(ed.registry, key)
		}
	}
	for key, n := range txn.pending {
		if txn.destroyed[key] {
			continue
		}
		n.Seal()
		ed.registry[key] = n
		kinds[key] = n.Kind()
		if txn.created[key] {
			muts[key] = MutationCreated
		} else {
			muts[key] = MutationUpdated
		}
	}

	ed.reconcile()
	ed.logger.Debug("transaction committed: %d mutation(s)", len(muts))
	ed.fireMutations(muts, kinds)
	ed.fireUpdateListeners()
	return nil
}

// reconcile rebuilds the element projection beneath the root element.
// Element identity changes on every commit except for the root; layout
// rects are carried over by key so overlay positioning survives
// re-render.
func (ed *Editor) reconcile() {
	old := ed.elements
	ed.elements = make(map[model.NodeKey]*dom.Element, len(ed.registry))
	ed.elements[ed.rootKey] = ed.rootEl

	for _, c := range append([]*dom.Element(nil), ed.rootEl.Children()...) {
		ed.rootEl.RemoveChild(c)
	}

	root := ed.registry[ed.rootKey].(*model.RootNode)
	for _, childKey := range root.ChildKeys() {
		if el := ed.buildElement(childKey, old); el != nil {
			ed.rootEl.AppendChild(el)
		}
	}

	ed.highlighted = nil
	if grid, ok := ed.selection.(GridSelection); ok {
		ed.applyHighlight(grid)
	}
}

func (ed *Editor) buildElement(key model.NodeKey, old map[model.NodeKey]*dom.Element) *dom.Element {
	n, ok := ed.registry[key]
	if !ok {
		return nil
	}

	var el *dom.Element
	switch n := n.(type) {
	case *model.TableNode:
		el = n.Render(ed.tableClass)
	case *model.TableRowNode:
		el = n.Render()
	case *model.TableCellNode:
		el = n.Render(ed.renderCfg)
	case *model.ParagraphNode:
		el = n.Render()
	case *model.TextNode:
		el = n.Render()
	case *model.LineBreakNode:
		el = n.Render()
	default:
		el = dom.NewElement("div")
	}

	if oldEl, ok := old[key]; ok {
		el.SetRect(oldEl.Rect())
	}
	ed.elements[key] = el

	if c, ok := n.(model.ContainerNode); ok {
		for _, childKey := range c.ChildKeys() {
			if childEl := ed.buildElement(childKey, old); childEl != nil {
				el.AppendChild(childEl)
			}
		}
	}
	return el
}
