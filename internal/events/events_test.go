// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import "testing"

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(ThemeChanged{Theme: "dark"})
	bus.Publish(SidebarToggled{Collapsed: true})

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	tc, ok := got[0].(ThemeChanged)
	if !ok || tc.Theme != "dark" {
		t.Errorf("first event = %#v, want ThemeChanged{dark}", got[0])
	}
	st, ok := got[1].(SidebarToggled)
	if !ok || !st.Collapsed {
		t.Errorf("second event = %#v, want SidebarToggled{true}", got[1])
	}
}

func TestBus_SubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe(func(Event) { order = append(order, 1) })
	bus.Subscribe(func(Event) { order = append(order, 2) })
	bus.Subscribe(func(Event) { order = append(order, 3) })

	bus.Publish(ThemeChanged{Theme: "light"})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	cancel := bus.Subscribe(func(Event) { count++ })

	bus.Publish(ThemeChanged{Theme: "ocean"})
	cancel()
	bus.Publish(ThemeChanged{Theme: "sunset"})

	if count != 1 {
		t.Fatalf("expected 1 delivery after unsubscribe, got %d", count)
	}

	// Double cancel must be harmless.
	cancel()
}

func TestBus_UnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()

	var cancel func()
	first := 0
	second := 0
	cancel = bus.Subscribe(func(Event) {
		first++
		cancel()
	})
	bus.Subscribe(func(Event) { second++ })

	bus.Publish(SidebarToggled{Collapsed: false})
	bus.Publish(SidebarToggled{Collapsed: true})

	if first != 1 {
		t.Errorf("self-unsubscribing handler ran %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining handler ran %d times, want 2", second)
	}
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()
	// Publishing into the void must not panic.
	bus.Publish(ThemeChanged{Theme: "cyberpunk"})
}
