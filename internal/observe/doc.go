// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package observe watches a document for inserted candidates and schedules
// debounced enhancement passes.
//
// The Debouncer is an explicit two-state machine (idle, pending flush)
// with a trailing-edge window: every trigger while pending pushes the
// deadline out, so a burst of mutations collapses into exactly one flush
// after the burst ends. The Loop feeds it from mutation records, filtering
// for added nodes that match or contain the candidate selector, and flushes
// into a full-document rescan. The rescan is deliberately global rather
// than incremental: decoration is idempotent, so rescanning everything is
// correct, and it cannot miss nodes that moved between mutation and flush.
//
// # Key Types
//
//   - Debouncer: trailing-edge timer with Trigger/Stop
//   - Loop: mutation subscription + relevance filter + debounced rescan
//
// # Usage
//
//	loop := observe.NewLoop(doc, root, eng, clock, 250*time.Millisecond)
//	loop.Start()
//	defer loop.Close()
package observe
