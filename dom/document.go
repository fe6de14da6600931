package dom

// PointerEvent carries a pointer-down dispatch. Position is in CSS pixels
// relative to the document origin.
type PointerEvent struct {
	Target *Element
	X, Y   float64

	stopped bool
}

// StopPropagation prevents the event from reaching document-scope listeners
// registered after the current one, and element listeners further up the
// ancestor chain.
func (ev *PointerEvent) StopPropagation() { ev.stopped = true }

// Stopped reports whether propagation was stopped.
func (ev *PointerEvent) Stopped() bool { return ev.stopped }

// PointerListener handles pointer-down events.
type PointerListener func(ev *PointerEvent)

type listenerEntry struct {
	id int
	fn PointerListener
}

// Document is the root of the rendered projection. It owns the body
// element, scroll offsets, and document-scope pointer-event dispatch.
type Document struct {
	body       *Element
	ScrollLeft float64
	ScrollTop  float64

	nextID    int
	listeners []listenerEntry

	elemListeners map[*Element][]listenerEntry
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{
		body:          NewElement("body"),
		elemListeners: make(map[*Element][]listenerEntry),
	}
}

// Body returns the document body element.
func (d *Document) Body() *Element { return d.body }

// AddPointerDownListener registers a document-scope pointer-down listener.
// The returned function unregisters it.
func (d *Document) AddPointerDownListener(fn PointerListener) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range d.listeners {
			if e.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered document-scope listeners.
func (d *Document) ListenerCount() int { return len(d.listeners) }

// AddElementPointerDownListener registers a pointer-down listener on a
// specific element. Element listeners run before document-scope listeners,
// innermost target first.
func (d *Document) AddElementPointerDownListener(el *Element, fn PointerListener) func() {
	d.nextID++
	id := d.nextID
	d.elemListeners[el] = append(d.elemListeners[el], listenerEntry{id: id, fn: fn})
	return func() {
		entries := d.elemListeners[el]
		for i, e := range entries {
			if e.id == id {
				d.elemListeners[el] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// DispatchPointerDown delivers a pointer-down event: element listeners from
// the target up the ancestor chain, then document-scope listeners, unless
// propagation is stopped.
func (d *Document) DispatchPointerDown(target *Element, x, y float64) *PointerEvent {
	ev := &PointerEvent{Target: target, X: x, Y: y}

	for n := target; n != nil; n = n.Parent() {
		for _, e := range d.elemListeners[n] {
			e.fn(ev)
			if ev.stopped {
				return ev
			}
		}
	}

	// Copy: a listener may unregister itself or others during dispatch.
	doc := make([]listenerEntry, len(d.listeners))
	copy(doc, d.listeners)
	for _, e := range doc {
		e.fn(ev)
		if ev.stopped {
			return ev
		}
	}
	return ev
}
