// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/labdeck/internal/config"
	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/enhance"
	"github.com/jeranaias/labdeck/internal/events"
	"github.com/jeranaias/labdeck/internal/observe"
	"github.com/jeranaias/labdeck/internal/prefs"
	"github.com/jeranaias/labdeck/internal/sidebar"
	"github.com/jeranaias/labdeck/internal/theme"
	"github.com/jeranaias/labdeck/internal/util"
)

const (
	// RootSelector locates the dashboard root the whole layer anchors to.
	RootSelector = "#app"

	// MarkerAttr on the root records that activation already ran, so a
	// second bootstrap (or a racing one) does not double-initialize.
	MarkerAttr = "data-labdeck"

	// MobileClass is applied to the root below the mobile breakpoint.
	MobileClass = "mobile"

	// Click targets wired during activation.
	themeToggleSelector   = "#theme-toggle"
	sidebarToggleSelector = "#sidebar-toggle"
)

// Lifecycle owns every handle the enhancement layer holds against a
// document: the bootstrap poll, the observation loop, event handler
// registrations, and the resize debouncer. One instance per document; no
// package-level state.
type Lifecycle struct {
	cfg   *config.Config
	doc   *dom.Document
	store prefs.Store
	bus   *events.Bus
	clock util.Clock

	themes   *theme.Controller
	sidebars *sidebar.Controller
	engine   *enhance.Engine

	mu         sync.Mutex
	loop       *observe.Loop
	resizeDeb  *observe.Debouncer
	cancelPoll func()
	cancels    []func()
	active     bool
}

// New wires a lifecycle over doc. Nothing touches the document until
// Start.
func New(cfg *config.Config, doc *dom.Document, store prefs.Store, bus *events.Bus, clock util.Clock) *Lifecycle {
	if clock == nil {
		clock = util.SystemClock{}
	}
	l := &Lifecycle{
		cfg:   cfg,
		doc:   doc,
		store: store,
		bus:   bus,
		clock: clock,
	}
	l.themes = theme.NewController(store, bus, doc)
	l.sidebars = sidebar.NewController(store, bus, doc)
	l.engine = enhance.NewEngine(clock, cfg.Enhance.Selector, cfg.Enhance.ReducedMotion, func() string {
		return l.themes.Palette().Icon
	})
	return l
}

// Start begins the bootstrap poll: wait for an uninitialized root, mark
// it, activate. The poll abandons at the configured timeout; a host that
// renders late can Kick to retry.
//
// The first poll check runs synchronously and activation takes l.mu
// itself, so the poll slot is claimed with a placeholder and the lock is
// released around Run rather than held across it.
func (l *Lifecycle) Start() {
	l.mu.Lock()
	if l.cancelPoll != nil {
		l.mu.Unlock()
		return
	}
	l.cancelPoll = func() {}
	l.mu.Unlock()

	p := Poller{
		Interval: l.cfg.PollInterval(),
		Timeout:  l.cfg.PollTimeout(),
		Clock:    l.clock,
	}
	cancel := p.Run(l.check, func() {
		log.Printf("lifecycle: root %q never appeared, giving up", RootSelector)
	})

	l.mu.Lock()
	if l.cancelPoll == nil {
		// Stopped while the first check ran.
		l.mu.Unlock()
		cancel()
		return
	}
	l.cancelPoll = cancel
	l.mu.Unlock()
}

// check is one poll attempt. It claims the root by writing the marker
// before activation so a concurrent bootstrap cannot double-run.
func (l *Lifecycle) check() bool {
	root := l.doc.Query(RootSelector)
	if root == nil {
		return false
	}
	if root.HasAttr(MarkerAttr) {
		// Someone already initialized this root; nothing left to poll
		// for.
		return true
	}
	root.SetAttr(MarkerAttr, "1")
	l.activate(root)
	return true
}

// activate runs the full startup sequence inside a failure boundary: a
// panic is logged and swallowed so the host page stays interactive with
// whatever was applied before the fault.
func (l *Lifecycle) activate(root *dom.Element) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("lifecycle: activation failed: %v", r)
		}
	}()

	l.themes.ApplySaved()
	l.sidebars.ApplySaved()
	l.engine.Rescan(l.doc)

	l.mu.Lock()
	l.loop = observe.NewLoop(l.doc, root, l.engine, l.clock, l.cfg.DebounceWindow())
	l.resizeDeb = observe.NewDebouncer(l.clock, l.cfg.DebounceWindow(), l.applyMobile)
	l.active = true
	l.mu.Unlock()

	l.loop.Start()
	l.wireHandlers()
	l.applyMobile()
}

// wireHandlers registers click, keyboard, and resize handlers. Missing
// click targets are skipped; pages without toggles still get shortcuts.
func (l *Lifecycle) wireHandlers() {
	var cancels []func()

	if btn := l.doc.Query(themeToggleSelector); btn != nil {
		cancels = append(cancels, l.doc.OnClick(btn, l.themes.Toggle))
	}
	if btn := l.doc.Query(sidebarToggleSelector); btn != nil {
		cancels = append(cancels, l.doc.OnClick(btn, l.sidebars.Toggle))
	}

	cancels = append(cancels, l.doc.OnKey(func(ev dom.KeyEvent) {
		if !ev.Ctrl || !ev.Shift {
			return
		}
		switch strings.ToUpper(ev.Key) {
		case "T":
			l.themes.Toggle()
		case "S":
			l.sidebars.Toggle()
		}
	}))

	cancels = append(cancels, l.doc.OnResize(func(int) {
		l.mu.Lock()
		deb := l.resizeDeb
		l.mu.Unlock()
		if deb != nil {
			deb.Trigger()
		}
	}))

	l.mu.Lock()
	l.cancels = append(l.cancels, cancels...)
	l.mu.Unlock()
}

// applyMobile toggles the mobile class from the current viewport width.
// Runs once at activation and again after each debounced resize.
func (l *Lifecycle) applyMobile() {
	root := l.doc.Query(RootSelector)
	if root == nil {
		return
	}
	w := l.doc.Width()
	if w > 0 && w < l.cfg.Bootstrap.MobileWidth {
		root.AddClass(MobileClass)
	} else {
		root.RemoveClass(MobileClass)
	}
}

// ============================================================================
// Public operations
// ============================================================================

// SetTheme activates the named theme (unknown names fall back to the
// default).
func (l *Lifecycle) SetTheme(name string) { l.themes.Set(name) }

// GetTheme returns the canonical active theme name.
func (l *Lifecycle) GetTheme() string { return l.themes.Get() }

// ToggleTheme activates the next theme in the cycle.
func (l *Lifecycle) ToggleTheme() { l.themes.Toggle() }

// ResetTheme returns to the default theme.
func (l *Lifecycle) ResetTheme() { l.themes.Reset() }

// RandomTheme activates a random member of the theme set.
func (l *Lifecycle) RandomTheme() { l.themes.Random() }

// ToggleSidebar flips the sidebar collapsed state.
func (l *Lifecycle) ToggleSidebar() { l.sidebars.Toggle() }

// ThemeIcon returns the active theme's icon glyph.
func (l *Lifecycle) ThemeIcon() string { return l.themes.Palette().Icon }

// Styles returns the lipgloss styles for the active theme.
func (l *Lifecycle) Styles() *theme.Styles {
	return theme.NewStyles(l.themes.Palette())
}

// SetInputValue writes value into the element matched by sel and
// dispatches synthetic input and change events, so host bindings that
// listen for user edits observe the programmatic write. Missing elements
// are logged, not errors.
func (l *Lifecycle) SetInputValue(sel, value string) {
	el := l.doc.Query(sel)
	if el == nil {
		log.Printf("lifecycle: no element matches %q", sel)
		return
	}
	l.doc.DispatchInput(el, value)
	l.doc.DispatchChange(el)
}

// Kick re-runs bootstrap. Useful when the host replaced the whole page
// after the original poll gave up. If the current root is already
// initialized this settles immediately.
func (l *Lifecycle) Kick() {
	l.mu.Lock()
	if l.cancelPoll != nil {
		l.cancelPoll()
		l.cancelPoll = nil
	}
	l.mu.Unlock()
	l.Start()
}

// Stop cancels the poll and suspends all enhancement activity. The
// document keeps its decorations and the root keeps its marker, so Stop
// followed by Kick is a cheap no-op re-init.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	if l.cancelPoll != nil {
		l.cancelPoll()
		l.cancelPoll = nil
	}
	loop := l.loop
	l.loop = nil
	deb := l.resizeDeb
	l.resizeDeb = nil
	cancels := l.cancels
	l.cancels = nil
	l.active = false
	l.mu.Unlock()

	if loop != nil {
		loop.Close()
	}
	if deb != nil {
		deb.Stop()
	}
	for _, c := range cancels {
		c()
	}
}

// Teardown is Stop plus removal of the initialized marker: the document
// is left as an uninitialized page (decorations stay, they are inert), and
// a later Start or Kick performs a full activation again.
func (l *Lifecycle) Teardown() {
	l.Stop()
	if root := l.doc.Query(RootSelector); root != nil {
		root.RemoveAttr(MarkerAttr)
	}
}

// Active reports whether activation has completed and not been stopped.
func (l *Lifecycle) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
