// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/events"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case busEventMsg:
		m.handleBusEvent(msg.event)
		m.refresh()
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleResize forwards the new size to the document, where the
// enhancement layer debounces it, and rebuilds the size-dependent pieces.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.doc.DispatchResize(msg.Width)

	contentWidth := m.contentWidth()
	if !m.ready {
		m.viewport = viewport.New(contentWidth, m.contentHeight())
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = m.contentHeight()
	}

	// Word wrap tracks the card column width.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(contentWidth-4),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refresh()
	return m, nil
}

// handleKey routes keystrokes. Theme and sidebar toggles are dispatched
// into the document as the keyboard shortcuts the enhancement layer
// registered, not called on the lifecycle directly, so this host
// exercises the same path as any other.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Theme):
		m.doc.DispatchKey(dom.KeyEvent{Key: "T", Ctrl: true, Shift: true})
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Sidebar):
		m.doc.DispatchKey(dom.KeyEvent{Key: "S", Ctrl: true, Shift: true})
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.RandomTheme):
		m.lc.RandomTheme()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.ResetTheme):
		m.lc.ResetTheme()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Reload):
		m.lc.Kick()
		m.status = "bootstrap re-run"
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleBusEvent updates the status line from enhancement layer events.
func (m *Model) handleBusEvent(ev events.Event) {
	switch ev := ev.(type) {
	case events.ThemeChanged:
		m.status = fmt.Sprintf("theme: %s", ev.Theme)
	case events.SidebarToggled:
		if ev.Collapsed {
			m.status = "sidebar collapsed"
		} else {
			m.status = "sidebar expanded"
		}
	}
}

// refresh recompiles styles for the active theme and re-renders the card
// column into the viewport.
func (m *Model) refresh() {
	m.styles = m.lc.Styles()
	if m.ready {
		m.viewport.SetContent(m.renderCards())
	}
}
