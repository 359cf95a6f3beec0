// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Get(KeyTheme)
	assert.False(t, ok, "empty store should report absence")

	store.Set(KeyTheme, "dark")
	v, ok := store.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	store.Set(KeySidebarCollapsed, "true")
	store.Set(KeySidebarCollapsed, "false")

	v, ok := store.Get(KeySidebarCollapsed)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	store.Set(KeyTheme, "ocean")
	require.NoError(t, store.Close())

	// A fresh store over the same file sees the persisted value, the
	// reload scenario preferences exist for.
	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "ocean", v)
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	// A path whose parent cannot be created forces the fallback.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := Open(filepath.Join(blocker, "nested", "prefs.db"))
	defer store.Close()

	_, isMemory := store.(*MemoryStore)
	assert.True(t, isMemory, "expected in-memory fallback")

	// The fallback still honors the contract.
	store.Set(KeyTheme, "sunset")
	v, ok := store.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "sunset", v)
}

func TestMemoryStore_Isolation(t *testing.T) {
	a := NewMemoryStore()
	b := NewMemoryStore()

	a.Set(KeyTheme, "dark")
	_, ok := b.Get(KeyTheme)
	assert.False(t, ok, "stores must not share state")
}
