package editor

import "github.com/penmark/tableedit/model"

// Mutation describes what happened to a node during a committed
// transaction.
type Mutation int

const (
	MutationCreated Mutation = iota
	MutationUpdated
	MutationDestroyed
)

func (m Mutation) String() string {
	switch m {
	case MutationCreated:
		return "created"
	case MutationUpdated:
		return "updated"
	case MutationDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// MutationListener is invoked after a transaction commits, with every
// mutated node of the registered kind.
type MutationListener func(mutations map[model.NodeKey]Mutation)

type mutationEntry struct {
	id   int
	kind model.NodeKind
	fn   MutationListener
}

// RegisterMutationListener registers a listener for mutations of nodes of
// the given kind. The returned function unregisters it.
func (ed *Editor) RegisterMutationListener(kind model.NodeKind, fn MutationListener) func() {
	ed.nextListenerID++
	id := ed.nextListenerID
	ed.listeners = append(ed.listeners, mutationEntry{id: id, kind: kind, fn: fn})
	return func() {
		for i, e := range ed.listeners {
			if e.id == id {
				ed.listeners = append(ed.listeners[:i], ed.listeners[i+1:]...)
				return
			}
		}
	}
}

// UpdateListener is invoked after every committed transaction.
type UpdateListener func()

type updateEntry struct {
	id int
	fn UpdateListener
}

// RegisterUpdateListener registers a listener invoked after every commit.
// The returned function unregisters it.
func (ed *Editor) RegisterUpdateListener(fn UpdateListener) func() {
	ed.nextListenerID++
	id := ed.nextListenerID
	ed.updateListeners = append(ed.updateListeners, updateEntry{id: id, fn: fn})
	return func() {
		for i, e := range ed.updateListeners {
			if e.id == id {
				ed.updateListeners = append(ed.updateListeners[:i], ed.updateListeners[i+1:]...)
				return
			}
		}
	}
}

func (ed *Editor) fireUpdateListeners() {
	entries := make([]updateEntry, len(ed.updateListeners))
	copy(entries, ed.updateListeners)
	for _, e := range entries {
		e.fn()
	}
}

func (ed *Editor) fireMutations(muts map[model.NodeKey]Mutation, kinds map[model.NodeKey]model.NodeKind) {
	if len(muts) == 0 || len(ed.listeners) == 0 {
		return
	}
	// Copy: a listener may unregister itself during dispatch.
	entries := make([]mutationEntry, len(ed.listeners))
	copy(entries, ed.listeners)

	for _, e := range entries {
		filtered := make(map[model.NodeKey]Mutation)
		for key, m := range muts {
			if kinds[key] == e.kind {
				filtered[key] = m
			}
		}
		if len(filtered) > 0 {
			e.fn(filtered)
		}
	}
}
