// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists user preferences as a namespaced key-value store.
//
// The primary backend is a SQLite database (modernc.org/sqlite, pure Go).
// When the database cannot be opened the package degrades to an in-memory
// store scoped to the process, logging a single diagnostic. Callers never
// see storage errors: Get and Set absorb faults so that preference
// persistence can never break the enhancement layer.
//
// # Key Types
//
//   - Store: the Get/Set/Close contract shared by both backends
//   - SQLiteStore: durable backend, one prefs table with upsert writes
//   - MemoryStore: per-process fallback backend
//
// # Usage
//
//	store := prefs.Open(dbPath)
//	defer store.Close()
//
//	store.Set(prefs.KeyTheme, "dark")
//	if v, ok := store.Get(prefs.KeyTheme); ok {
//		applyTheme(v)
//	}
package prefs
