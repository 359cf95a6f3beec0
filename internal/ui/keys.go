// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal dashboard view.
//
// This file defines keyboard bindings for the dashboard, with help text
// for the footer and the help overlay.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the dashboard.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Theme       key.Binding
	Sidebar     key.Binding
	RandomTheme key.Binding
	ResetTheme  key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings for the dashboard.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sidebar"),
		),
		RandomTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "random theme"),
		),
		ResetTheme: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "default theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "re-run bootstrap"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Theme, k.Sidebar, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown},
		// Appearance
		{k.Theme, k.RandomTheme, k.ResetTheme, k.Sidebar},
		// Actions
		{k.Reload, k.Help, k.Quit},
	}
}
