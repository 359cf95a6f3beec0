// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"log"
)

// Preference keys are namespaced so the store can be shared with other
// tooling without collisions.
const (
	// Namespace prefixes every labdeck preference key.
	Namespace = "labdeck."

	// KeyTheme holds the canonical name of the active theme.
	KeyTheme = Namespace + "theme"

	// KeySidebarCollapsed holds "true" or "false".
	KeySidebarCollapsed = Namespace + "sidebar_collapsed"
)

// Store is the preference contract. Implementations absorb their own
// failures: Get reports absence instead of erroring and Set logs rather
// than returning faults, so preference traffic can never take down the
// enhancement layer.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string)

	// Close releases backend resources.
	Close() error
}

// Open returns a SQLite-backed store at path, or an in-memory fallback
// when the database cannot be opened. The fallback is announced once;
// preferences then last only for the process lifetime.
func Open(path string) Store {
	s, err := OpenSQLite(path)
	if err != nil {
		log.Printf("prefs: falling back to in-memory store: %v", err)
		return NewMemoryStore()
	}
	return s
}
