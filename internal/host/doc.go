// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package host bridges the dashboard's HTML source file to a live
// document. A Reloader watches the file with fsnotify, debounces editor
// save bursts, and appends newly written cards into the live tree, where
// the observation loop decorates them like any other runtime mutation.
//
// Reloads are rate limited so a pathological writer cannot turn the
// enhancement layer into a reparse loop.
package host
