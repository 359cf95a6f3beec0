// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared plumbing for the labdeck application.
//
// This package contains the clock abstraction used by every time-driven
// component (debouncing, animation, polling) and crash-safe file writing.
//
// # Key Types
//
// Time:
//   - Clock: minimal interface over wall-clock time and deferred callbacks
//   - SystemClock: production implementation backed by the time package
//   - FakeClock: deterministic implementation for tests
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Schedule a callback 250ms out, cancelable
//	t := clock.AfterFunc(250*time.Millisecond, flush)
//	defer t.Stop()
//
//	// In tests, advance time deterministically
//	fc := util.NewFakeClock(time.Now())
//	fc.Advance(300 * time.Millisecond)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
