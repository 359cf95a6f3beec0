// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package observe

import (
	"sync"
	"time"

	"github.com/jeranaias/labdeck/internal/dom"
	"github.com/jeranaias/labdeck/internal/enhance"
	"github.com/jeranaias/labdeck/internal/util"
)

// Loop subscribes to mutation records within a scope and schedules
// debounced rescans when inserted nodes are (or contain) candidates.
type Loop struct {
	doc   *dom.Document
	scope *dom.Element
	eng   *enhance.Engine
	deb   *Debouncer

	mu     sync.Mutex
	cancel func()
}

// NewLoop builds a loop over scope. A nil scope observes the whole
// document; hosts pass the app root when it exists so unrelated page
// chrome cannot trigger rescans.
func NewLoop(doc *dom.Document, scope *dom.Element, eng *enhance.Engine, clock util.Clock, window time.Duration) *Loop {
	l := &Loop{
		doc:   doc,
		scope: scope,
		eng:   eng,
	}
	l.deb = NewDebouncer(clock, window, l.flush)
	return l
}

// Start subscribes to mutations. Starting twice is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	l.cancel = l.doc.Observe(l.scope, l.onMutation)
}

// onMutation triggers the debouncer when any added node is relevant.
// Removals never trigger: decoration state lives on the removed subtree
// and leaves with it.
func (l *Loop) onMutation(rec dom.MutationRecord) {
	sel := l.eng.Selector()
	for _, added := range rec.Added {
		if added.Matches(sel) || added.Query(sel) != nil {
			l.deb.Trigger()
			return
		}
	}
}

// flush runs one full-document pass. Global rather than incremental on
// purpose: idempotent decoration makes the global pass correct, and it
// picks up candidates that moved since their insertion record.
func (l *Loop) flush() {
	l.eng.Rescan(l.doc)
}

// Close tears down the mutation subscription and cancels any pending
// flush. Safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	l.deb.Stop()
}
