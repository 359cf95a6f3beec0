// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dom implements the mutable element tree that labdeck enhances.
//
// The tree mirrors the parts of a host page the enhancement layer cares
// about: tags, ids, classes, attributes, text, child insertion and removal,
// simple selector queries, synchronous mutation records, and user event
// dispatch (click, key, input/change, resize). Host pages are parsed from
// HTML snapshots with golang.org/x/net/html.
//
// The tree itself is not goroutine-safe; a host that mutates it from more
// than one goroutine must serialize access. Observer and handler
// registration is safe for concurrent use.
//
// # Key Types
//
//   - Document: owns the tree, mutation observers, and event handlers
//   - Element: one node; query and mutate through its methods
//   - MutationRecord: synchronous notification of child list changes
//   - KeyEvent: a dispatched keystroke with modifier state
//
// # Usage
//
//	doc, err := dom.ParseFile("dashboard.html")
//	root := doc.Query("#app")
//	cancel := doc.Observe(root, func(rec dom.MutationRecord) {
//		// react to inserted nodes
//	})
//	defer cancel()
package dom
