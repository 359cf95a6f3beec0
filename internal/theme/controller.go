// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"log"
	"math/rand"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/events"
	"github.com/jeranaias/labdeck/internal/prefs"
)

// RootSelector locates the element that carries the data-theme attribute.
const RootSelector = "#app"

// Controller applies themes to a document, persists the active choice, and
// publishes ThemeChanged for user-driven switches.
type Controller struct {
	store   prefs.Store
	bus     *events.Bus
	doc     *dom.Document
	rootSel string
}

// NewController returns a controller over the default root selector.
func NewController(store prefs.Store, bus *events.Bus, doc *dom.Document) *Controller {
	return &Controller{
		store:   store,
		bus:     bus,
		doc:     doc,
		rootSel: RootSelector,
	}
}

// Get returns the canonical name of the active theme: the persisted value
// when it names a known theme, the default otherwise. Unknown persisted
// values resolve silently; writes are where validation warns.
func (c *Controller) Get() string {
	stored, ok := c.store.Get(prefs.KeyTheme)
	if !ok {
		return DefaultName
	}
	if canonical := Canonical(stored); canonical != "" {
		return canonical
	}
	return DefaultName
}

// Palette returns the active theme's palette.
func (c *Controller) Palette() Palette {
	p, _ := Lookup(c.Get())
	return p
}

// Set activates the named theme. An unknown name activates the default
// with a warning; Set never fails.
func (c *Controller) Set(name string) {
	canonical := Canonical(name)
	if canonical == "" {
		log.Printf("theme: unknown theme %q, using %s", name, DefaultName)
		canonical = DefaultName
	}
	c.apply(canonical, true)
}

// Toggle activates the cyclic successor of the active theme.
func (c *Controller) Toggle() {
	c.apply(Next(c.Get()), true)
}

// Reset activates the default theme.
func (c *Controller) Reset() {
	c.apply(DefaultName, true)
}

// Random activates a uniformly chosen member of the theme set.
func (c *Controller) Random() {
	c.apply(Names[rand.Intn(len(Names))], true)
}

// ApplySaved re-applies the persisted theme to the document without
// publishing. Used at startup, where nothing user-driven happened.
func (c *Controller) ApplySaved() {
	c.apply(c.Get(), false)
}

// apply writes the data-theme attribute, persists, and optionally
// publishes. The document root may legitimately be absent (activation
// races the host render); persistence still proceeds so the next pass
// picks the theme up.
func (c *Controller) apply(canonical string, publish bool) {
	if root := c.doc.Query(c.rootSel); root != nil {
		root.SetAttr("data-theme", canonical)
	}
	c.store.Set(prefs.KeyTheme, canonical)
	if publish {
		c.bus.Publish(events.ThemeChanged{Theme: canonical})
	}
}
