// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar controls the collapsed/expanded state of the dashboard
// sidebar: the collapsed class and data-collapsed attribute on the sidebar
// element, the persisted preference, and SidebarToggled events for
// user-driven flips.
package sidebar

import (
	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/events"
	"github.com/jeranaias/labdeck/internal/prefs"
)

// Selector locates the sidebar element.
const Selector = "#sidebar"

// CollapsedClass marks the sidebar as collapsed in the document.
const CollapsedClass = "collapsed"

// Controller flips and restores sidebar state. The default state is
// expanded.
type Controller struct {
	store prefs.Store
	bus   *events.Bus
	doc   *dom.Document
}

// NewController returns a controller over the default sidebar selector.
func NewController(store prefs.Store, bus *events.Bus, doc *dom.Document) *Controller {
	return &Controller{store: store, bus: bus, doc: doc}
}

// Collapsed reports the persisted state; absent means expanded.
func (c *Controller) Collapsed() bool {
	v, ok := c.store.Get(prefs.KeySidebarCollapsed)
	return ok && v == "true"
}

// Toggle flips the collapsed state, updates the document, persists, and
// publishes SidebarToggled. A document without a sidebar element is a
// silent no-op: state must not change when there is nothing to toggle.
func (c *Controller) Toggle() {
	el := c.doc.Query(Selector)
	if el == nil {
		return
	}

	collapsed := !c.Collapsed()
	applyState(el, collapsed)
	c.store.Set(prefs.KeySidebarCollapsed, boolString(collapsed))
	c.bus.Publish(events.SidebarToggled{Collapsed: collapsed})
}

// ApplySaved restores the persisted state onto the document without
// publishing. Used at startup.
func (c *Controller) ApplySaved() {
	el := c.doc.Query(Selector)
	if el == nil {
		return
	}
	applyState(el, c.Collapsed())
}

func applyState(el *dom.Element, collapsed bool) {
	if collapsed {
		el.AddClass(CollapsedClass)
	} else {
		el.RemoveClass(CollapsedClass)
	}
	el.SetAttr("data-collapsed", boolString(collapsed))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
