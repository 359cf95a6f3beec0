// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import "sync"

// Event is the closed set of notification records crossing the module
// boundary. Hosts switch on the concrete type.
type Event interface {
	event()
}

// ThemeChanged is published after a user-driven theme switch has been
// applied and persisted.
type ThemeChanged struct {
	// Theme is the canonical name of the now-active theme.
	Theme string
}

func (ThemeChanged) event() {}

// SidebarToggled is published after a user-driven sidebar toggle.
// Restoring persisted state at startup does not publish.
type SidebarToggled struct {
	// Collapsed is the state after the toggle.
	Collapsed bool
}

func (SidebarToggled) event() {}

// Bus delivers events synchronously to subscribers in subscription order.
// There is no acknowledgment; a subscriber that needs to defer work should
// hand the event off itself.
type Bus struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for all future events. The returned func removes
// the subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber. The subscriber list is
// snapshotted first so a handler may unsubscribe itself mid-delivery.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(e)
	}
}
