// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lifecycle bootstraps and tears down the enhancement layer.
//
// A Lifecycle instance owns every handle held against one document: the
// bootstrap poll, the observation loop, event handler registrations, and
// the resize debouncer. Activation is raced against the host's first
// render by a bounded Poller; the root element is claimed with a marker
// attribute before activation so two bootstraps can never double-run. The
// activation body sits inside a recover boundary: a fault in the
// enhancement layer must never take the host page down with it.
//
// # Key Types
//
//   - Lifecycle: Start/Stop/Kick/Teardown plus the public theme, sidebar,
//     and input operations
//   - Poller: retry-with-timeout primitive for the bootstrap race
//
// # Usage
//
//	lc := lifecycle.New(cfg, doc, store, bus, nil)
//	lc.Start()
//	defer lc.Teardown()
package lifecycle
