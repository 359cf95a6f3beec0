// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package observe

import (
	"sync"
	"time"

	"github.com/jeranaias/labdeck/internal/util"
)

// DefaultWindow is the debounce window when the host does not configure
// one.
const DefaultWindow = 250 * time.Millisecond

// debounce states. The machine is deliberately explicit: idle means no
// timer exists, pending means exactly one armed timer exists.
type debounceState int

const (
	stateIdle debounceState = iota
	statePending
)

// Debouncer coalesces triggers into a single trailing-edge callback: the
// callback fires once the window elapses with no further triggers. A
// zero window degrades to firing on the next clock tick, never
// synchronously from Trigger.
type Debouncer struct {
	mu       sync.Mutex
	clock    util.Clock
	window   time.Duration
	fn       func()
	state    debounceState
	timer    util.Timer
	deadline time.Time
}

// NewDebouncer returns an idle debouncer that will invoke fn.
func NewDebouncer(clock util.Clock, window time.Duration, fn func()) *Debouncer {
	if clock == nil {
		clock = util.SystemClock{}
	}
	if window < 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		clock:  clock,
		window: window,
		fn:     fn,
	}
}

// Trigger requests a flush. While pending, the deadline is pushed out to a
// full window from now (trailing edge).
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.deadline = d.clock.Now().Add(d.window)
	if d.state == statePending {
		d.timer.Reset(d.window)
		return
	}

	d.state = statePending
	d.timer = d.clock.AfterFunc(d.window, d.fire)
}

// fire transitions back to idle before running fn, so a trigger from
// inside the callback schedules a fresh window. A real timer whose
// callback was already in flight when Trigger reset it arrives before
// the moved deadline; that callback re-arms instead of flushing early.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.state != statePending {
		d.mu.Unlock()
		return
	}
	if remaining := d.deadline.Sub(d.clock.Now()); remaining > 0 {
		d.timer = d.clock.AfterFunc(remaining, d.fire)
		d.mu.Unlock()
		return
	}
	d.state = stateIdle
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()

	fn()
}

// Pending reports whether a flush is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == statePending
}

// Stop cancels any scheduled flush and returns to idle.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == statePending {
		d.timer.Stop()
		d.timer = nil
		d.state = stateIdle
	}
}
