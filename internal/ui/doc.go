// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui renders a live document as a Bubble Tea dashboard.
//
// The model is a thin host around the enhancement layer: terminal
// keystrokes become document key events, terminal resizes become document
// resize events, and the view is re-read from the document on every
// render. Theme changes and sidebar toggles arrive back over the event
// bus, so the UI reflects whatever the layer did, including changes made
// by other handlers.
//
// # Key Types
//
//   - Model: the Bubble Tea model, one per document
//   - KeyMap: keyboard bindings with footer and overlay help
//
// # Usage
//
//	m := ui.New(cfg, doc, lc, bus)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package ui
