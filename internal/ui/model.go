// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/labdeck/internal/config"
	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/events"
	"github.com/jeranaias/labdeck/internal/lifecycle"
	"github.com/jeranaias/labdeck/internal/theme"
)

// =============================================================================
// DASHBOARD MODEL
// =============================================================================

// busEventMsg carries an enhancement layer event into the Bubble Tea
// update loop.
type busEventMsg struct {
	event events.Event
}

// Model is the Bubble Tea model for the dashboard. It renders the live
// document and translates terminal input into document events, so every
// state change flows through the same pipeline a browser host would use.
type Model struct {
	cfg *config.Config
	doc *dom.Document
	lc  *lifecycle.Lifecycle

	styles *theme.Styles
	keyMap KeyMap

	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	eventCh   chan events.Event
	cancelBus func()
	busMu     sync.Mutex
	busClosed bool

	width    int
	height   int
	ready    bool
	showHelp bool
	status   string
}

// New builds the dashboard model over an already-constructed lifecycle.
// The caller starts the lifecycle; the model only reads and dispatches.
func New(cfg *config.Config, doc *dom.Document, lc *lifecycle.Lifecycle, bus *events.Bus) *Model {
	m := &Model{
		cfg:     cfg,
		doc:     doc,
		lc:      lc,
		styles:  lc.Styles(),
		keyMap:  DefaultKeyMap(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		eventCh: make(chan events.Event, 32),
	}

	// Bus callbacks run on the dispatching goroutine; hand them to the
	// update loop through the channel. A full channel drops the event,
	// which is fine: the view re-reads the document on every render.
	// busMu orders sends against Close: a publish that snapshotted the
	// subscriber list before the cancel may still deliver after it.
	m.cancelBus = bus.Subscribe(func(ev events.Event) {
		m.busMu.Lock()
		defer m.busMu.Unlock()
		if m.busClosed {
			return
		}
		select {
		case m.eventCh <- ev:
		default:
		}
	})

	return m
}

// Init starts the spinner and the bus event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// waitForEvent blocks on the bus channel and delivers the next event as a
// message.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.eventCh
		if !ok {
			return nil
		}
		return busEventMsg{event: ev}
	}
}

// Close releases the bus subscription and the event pump. Safe to call
// more than once, and safe against a publish already in flight.
func (m *Model) Close() {
	m.cancelBus()
	m.busMu.Lock()
	if m.busClosed {
		m.busMu.Unlock()
		return
	}
	m.busClosed = true
	m.busMu.Unlock()
	close(m.eventCh)
}
