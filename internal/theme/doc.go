// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme manages the fixed, ordered set of dashboard themes.
//
// Five themes ship with labdeck: Light, Dark, Cyberpunk, Ocean, and Sunset.
// Each carries a full color palette and an icon, and compiles into a set of
// lipgloss styles for terminal hosts. The Controller applies themes to a
// document (data-theme attribute on the root element), persists the choice,
// and publishes ThemeChanged events for user-driven switches.
//
// Unknown theme names are never an error: they resolve to the default
// (Light) with a warning log, so a corrupt preference can't break startup.
//
// # Key Types
//
//   - Palette: the color data for one theme
//   - Styles: lipgloss styles compiled from a palette
//   - Controller: Set/Get/Toggle/Reset/Random over the theme set
//
// # Usage
//
//	ctl := theme.NewController(store, bus, doc)
//	ctl.ApplySaved()          // silent restore at startup
//	ctl.Toggle()              // cyclic switch, persisted + published
//	styles := theme.NewStyles(ctl.Palette())
package theme
