// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package events defines the typed notification records published at the
// labdeck module boundary and the synchronous bus that carries them.
//
// # Key Types
//
//   - Event: marker interface implemented by every notification record
//   - ThemeChanged: the active theme switched
//   - SidebarToggled: the sidebar collapsed state flipped
//   - Bus: ordered, synchronous fan-out to zero or more subscribers
//
// # Usage
//
//	bus := events.NewBus()
//	cancel := bus.Subscribe(func(e events.Event) {
//		if tc, ok := e.(events.ThemeChanged); ok {
//			refreshStyles(tc.Theme)
//		}
//	})
//	defer cancel()
//
//	bus.Publish(events.ThemeChanged{Theme: "dark"})
package events
