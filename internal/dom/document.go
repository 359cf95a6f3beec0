// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import "sync"

// MutationRecord describes one child list change. Records are delivered
// synchronously, on the mutating goroutine, in mutation order.
type MutationRecord struct {
	// Target is the element whose child list changed.
	Target *Element

	// Added holds nodes appended to Target in this mutation.
	Added []*Element

	// Removed holds nodes detached from Target in this mutation.
	Removed []*Element
}

// KeyEvent is a dispatched keystroke with modifier state.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
}

// Document owns an element tree plus the observers and event handlers
// registered against it. Registration and dispatch are safe for concurrent
// use; tree mutation is not and must be serialized by the host.
type Document struct {
	top   *Element
	width int

	mu        sync.Mutex
	closed    bool
	nextID    int
	observers []observerEntry
	clicks    []elementHandler
	inputs    []valueHandler
	changes   []valueHandler
	keys      []keyHandler
	resizes   []resizeHandler
}

type observerEntry struct {
	id    int
	scope *Element
	fn    func(MutationRecord)
}

type elementHandler struct {
	id int
	el *Element
	fn func()
}

type valueHandler struct {
	id int
	el *Element
	fn func(value string)
}

type keyHandler struct {
	id int
	fn func(KeyEvent)
}

type resizeHandler struct {
	id int
	fn func(width int)
}

// NewDocument returns a document with an empty body element at the top.
func NewDocument() *Document {
	doc := &Document{}
	doc.top = newElement(doc, "body")
	return doc
}

// Top returns the top element of the tree.
func (d *Document) Top() *Element { return d.top }

// Width returns the viewport width from the last resize dispatch, 0 before
// any.
func (d *Document) Width() int { return d.width }

// CreateElement returns a new detached element bound to this document.
func (d *Document) CreateElement(tag string) *Element {
	return newElement(d, tag)
}

// Query returns the first element under the top matching sel, or nil.
func (d *Document) Query(sel string) *Element {
	return d.top.Query(sel)
}

// QueryAll returns all elements under the top matching sel.
func (d *Document) QueryAll(sel string) []*Element {
	return d.top.QueryAll(sel)
}

// ============================================================================
// Mutation observation
// ============================================================================

// Observe registers fn for child list changes within scope (the scope
// element and its whole subtree). A nil scope observes the entire
// document. The returned func cancels the subscription.
func (d *Document) Observe(scope *Element, fn func(MutationRecord)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.observers = append(d.observers, observerEntry{id: id, scope: scope, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// notify fans a record out to observers whose scope contains the target.
func (d *Document) notify(rec MutationRecord) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	snapshot := make([]observerEntry, len(d.observers))
	copy(snapshot, d.observers)
	d.mu.Unlock()

	for _, o := range snapshot {
		if o.scope == nil || inScope(o.scope, rec.Target) {
			o.fn(rec)
		}
	}
}

// inScope reports whether target is scope or a descendant of scope.
func inScope(scope, target *Element) bool {
	for n := target; n != nil; n = n.parent {
		if n == scope {
			return true
		}
	}
	return false
}

// ============================================================================
// Event handlers and dispatch
// ============================================================================

// OnClick registers fn for clicks dispatched to el.
func (d *Document) OnClick(el *Element, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.clicks = append(d.clicks, elementHandler{id: id, el: el, fn: fn})
	return func() { d.removeClick(id) }
}

func (d *Document) removeClick(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, h := range d.clicks {
		if h.id == id {
			d.clicks = append(d.clicks[:i], d.clicks[i+1:]...)
			return
		}
	}
}

// DispatchClick delivers a click to handlers registered on el.
func (d *Document) DispatchClick(el *Element) {
	d.mu.Lock()
	snapshot := make([]elementHandler, len(d.clicks))
	copy(snapshot, d.clicks)
	d.mu.Unlock()
	for _, h := range snapshot {
		if h.el == el {
			h.fn()
		}
	}
}

// OnKey registers fn for every dispatched keystroke.
func (d *Document) OnKey(fn func(KeyEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.keys = append(d.keys, keyHandler{id: id, fn: fn})
	return func() { d.removeKey(id) }
}

func (d *Document) removeKey(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, h := range d.keys {
		if h.id == id {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			return
		}
	}
}

// DispatchKey delivers a keystroke to all key handlers.
func (d *Document) DispatchKey(ev KeyEvent) {
	d.mu.Lock()
	snapshot := make([]keyHandler, len(d.keys))
	copy(snapshot, d.keys)
	d.mu.Unlock()
	for _, h := range snapshot {
		h.fn(ev)
	}
}

// OnResize registers fn for viewport width changes.
func (d *Document) OnResize(fn func(width int)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.resizes = append(d.resizes, resizeHandler{id: id, fn: fn})
	return func() { d.removeResize(id) }
}

func (d *Document) removeResize(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, h := range d.resizes {
		if h.id == id {
			d.resizes = append(d.resizes[:i], d.resizes[i+1:]...)
			return
		}
	}
}

// DispatchResize records the new viewport width and notifies handlers.
func (d *Document) DispatchResize(width int) {
	d.width = width
	d.mu.Lock()
	snapshot := make([]resizeHandler, len(d.resizes))
	copy(snapshot, d.resizes)
	d.mu.Unlock()
	for _, h := range snapshot {
		h.fn(width)
	}
}

// OnInput registers fn for input events dispatched to el.
func (d *Document) OnInput(el *Element, fn func(value string)) func() {
	return d.addValueHandler(&d.inputs, el, fn)
}

// OnChange registers fn for change events dispatched to el.
func (d *Document) OnChange(el *Element, fn func(value string)) func() {
	return d.addValueHandler(&d.changes, el, fn)
}

func (d *Document) addValueHandler(list *[]valueHandler, el *Element, fn func(string)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	*list = append(*list, valueHandler{id: id, el: el, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, h := range *list {
			if h.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// DispatchInput sets el's value attribute and delivers an input event.
func (d *Document) DispatchInput(el *Element, value string) {
	el.SetAttr("value", value)
	d.dispatchValue(&d.inputs, el, value)
}

// DispatchChange delivers a change event carrying el's current value.
func (d *Document) DispatchChange(el *Element) {
	d.dispatchValue(&d.changes, el, el.Attr("value"))
}

func (d *Document) dispatchValue(list *[]valueHandler, el *Element, value string) {
	d.mu.Lock()
	snapshot := make([]valueHandler, len(*list))
	copy(snapshot, *list)
	d.mu.Unlock()
	for _, h := range snapshot {
		if h.el == el {
			h.fn(value)
		}
	}
}

// Close drops every observer and handler. The tree stays readable but no
// further notifications are delivered.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.observers = nil
	d.clicks = nil
	d.inputs = nil
	d.changes = nil
	d.keys = nil
	d.resizes = nil
}
