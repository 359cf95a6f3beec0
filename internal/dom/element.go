// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"sort"
	"strings"
)

// Element is a single node in the document tree. All reads and writes go
// through methods so child list changes can emit mutation records.
type Element struct {
	doc      *Document
	parent   *Element
	tag      string
	attrs    map[string]string
	classes  []string
	text     string
	children []*Element
}

func newElement(doc *Document, tag string) *Element {
	return &Element{
		doc:   doc,
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
	}
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the id attribute, or "".
func (e *Element) ID() string { return e.attrs["id"] }

// Text returns the element's own text content (not descendants').
func (e *Element) Text() string { return e.text }

// SetText replaces the element's own text content.
func (e *Element) SetText(s string) { e.text = s }

// Parent returns the parent element, or nil for a detached or top element.
func (e *Element) Parent() *Element { return e.parent }

// Document returns the owning document, nil for an unbound clone.
func (e *Element) Document() *Document { return e.doc }

// ============================================================================
// Attributes and classes
// ============================================================================

// Attr returns the named attribute value, or "" when absent. The class
// attribute reflects the live class list.
func (e *Element) Attr(name string) string {
	if name == "class" {
		return strings.Join(e.classes, " ")
	}
	return e.attrs[name]
}

// HasAttr reports whether the attribute is present, even when empty.
func (e *Element) HasAttr(name string) bool {
	if name == "class" {
		return len(e.classes) > 0
	}
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute. Setting "class" replaces the class list.
func (e *Element) SetAttr(name, value string) {
	if name == "class" {
		e.classes = strings.Fields(value)
		return
	}
	e.attrs[name] = value
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	if name == "class" {
		e.classes = nil
		return
	}
	delete(e.attrs, name)
}

// AttrNames returns the attribute names in sorted order, class included
// when the class list is non-empty.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.attrs)+1)
	for name := range e.attrs {
		names = append(names, name)
	}
	if len(e.classes) > 0 {
		names = append(names, "class")
	}
	sort.Strings(names)
	return names
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

// AddClass appends name to the class list; adding twice is a no-op.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass removes name from the class list if present.
func (e *Element) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// ============================================================================
// Child list
// ============================================================================

// Children returns a copy of the direct child slice.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first. If e is part of a live document the change is
// reported to matching mutation observers.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	child.adopt(e.doc)
	e.children = append(e.children, child)
	if e.doc != nil && e.attached() {
		e.doc.notify(MutationRecord{Target: e, Added: []*Element{child}})
	}
}

// RemoveChild detaches child from e. No-op if child is not a direct child.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			wasAttached := e.doc != nil && e.attached()
			child.parent = nil
			if wasAttached {
				e.doc.notify(MutationRecord{Target: e, Removed: []*Element{child}})
			}
			return
		}
	}
}

// ChildWithClass returns the first direct child carrying the class, or nil.
// Direct children only: a nested element that happens to carry the class
// must not satisfy the check for its ancestors.
func (e *Element) ChildWithClass(name string) *Element {
	for _, c := range e.children {
		if c.HasClass(name) {
			return c
		}
	}
	return nil
}

// attached reports whether e is reachable from its document's top element.
func (e *Element) attached() bool {
	if e.doc == nil {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n == e.doc.top {
			return true
		}
	}
	return false
}

// adopt rebinds e and its subtree to doc. Used when a subtree built against
// one document (or none) is appended into another.
func (e *Element) adopt(doc *Document) {
	if e.doc == doc {
		return
	}
	e.doc = doc
	for _, c := range e.children {
		c.adopt(doc)
	}
}

// ============================================================================
// Queries
// ============================================================================

// Matches reports whether e itself satisfies the compound selector
// (optional tag, #id, .classes).
func (e *Element) Matches(sel string) bool {
	return parseSelector(sel).match(e)
}

// Query returns the first descendant matching sel in depth-first order,
// excluding e itself, or nil.
func (e *Element) Query(sel string) *Element {
	parsed := parseSelector(sel)
	var found *Element
	e.walkDescendants(func(n *Element) bool {
		if parsed.match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAll returns all descendants matching sel in depth-first order,
// excluding e itself.
func (e *Element) QueryAll(sel string) []*Element {
	parsed := parseSelector(sel)
	var out []*Element
	e.walkDescendants(func(n *Element) bool {
		if parsed.match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walkDescendants visits descendants depth-first; visit returns false to
// stop the walk.
func (e *Element) walkDescendants(visit func(*Element) bool) bool {
	for _, c := range e.children {
		if !visit(c) {
			return false
		}
		if !c.walkDescendants(visit) {
			return false
		}
	}
	return true
}

// Clone returns a detached deep copy of e and its subtree, bound to no
// document until appended somewhere.
func (e *Element) Clone() *Element {
	cp := &Element{
		tag:   e.tag,
		text:  e.text,
		attrs: make(map[string]string, len(e.attrs)),
	}
	for k, v := range e.attrs {
		cp.attrs[k] = v
	}
	cp.classes = append(cp.classes, e.classes...)
	for _, c := range e.children {
		cc := c.Clone()
		cc.parent = cp
		cp.children = append(cp.children, cc)
	}
	return cp
}
