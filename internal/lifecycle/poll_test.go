// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"testing"
	"time"

	"github.com/jeranaias/labdeck/internal/util"
)

func TestPoller_ImmediateSuccess(t *testing.T) {
	fc := util.NewFakeClock(time.Unix(0, 0))
	checks := 0
	p := Poller{Interval: 500 * time.Millisecond, Timeout: 10 * time.Second, Clock: fc}

	p.Run(func() bool { checks++; return true }, nil)

	if checks != 1 {
		t.Fatalf("checks = %d, want 1", checks)
	}
	if fc.Pending() != 0 {
		t.Error("timer left armed after success")
	}
}

func TestPoller_SucceedsOnLaterAttempt(t *testing.T) {
	fc := util.NewFakeClock(time.Unix(0, 0))
	checks := 0
	p := Poller{Interval: 500 * time.Millisecond, Timeout: 10 * time.Second, Clock: fc}

	p.Run(func() bool {
		checks++
		return checks == 4
	}, nil)

	fc.Advance(2 * time.Second)

	if checks != 4 {
		t.Fatalf("checks = %d, want 4", checks)
	}
	// No further attempts after success.
	fc.Advance(5 * time.Second)
	if checks != 4 {
		t.Fatalf("poll kept running after success: %d checks", checks)
	}
}

func TestPoller_GivesUpAtTimeout(t *testing.T) {
	fc := util.NewFakeClock(time.Unix(0, 0))
	checks := 0
	expired := 0
	p := Poller{Interval: 500 * time.Millisecond, Timeout: 10 * time.Second, Clock: fc}

	p.Run(func() bool { checks++; return false }, func() { expired++ })

	fc.Advance(time.Minute)

	if expired != 1 {
		t.Fatalf("expired callback ran %d times, want 1", expired)
	}
	// Checks at 0, 0.5s, ..., 10s inclusive.
	if want := 21; checks != want {
		t.Errorf("checks = %d, want %d", checks, want)
	}
	if fc.Pending() != 0 {
		t.Error("timer left armed after giving up")
	}
}

func TestPoller_Cancel(t *testing.T) {
	fc := util.NewFakeClock(time.Unix(0, 0))
	checks := 0
	p := Poller{Interval: 500 * time.Millisecond, Timeout: 10 * time.Second, Clock: fc}

	cancel := p.Run(func() bool { checks++; return false }, func() {
		t.Error("expired after cancel")
	})

	fc.Advance(time.Second)
	cancel()
	fc.Advance(time.Minute)

	if checks != 3 {
		t.Errorf("checks = %d, want 3 (at 0, 0.5s, 1s)", checks)
	}
}

func TestPoller_ZeroConfigDefaults(t *testing.T) {
	fc := util.NewFakeClock(time.Unix(0, 0))
	checks := 0
	p := Poller{Clock: fc}

	p.Run(func() bool { checks++; return false }, nil)
	fc.Advance(DefaultPollInterval)

	if checks != 2 {
		t.Errorf("checks = %d, want 2 with default interval", checks)
	}
}
