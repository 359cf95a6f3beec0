// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"sort"
	"sync"
	"time"
)

// Clock abstracts wall-clock time and deferred callbacks so that debounce
// windows, animations, and polling loops can be tested without sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d elapses. The returned Timer
	// can be stopped or reset before it fires.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancelable deferred callback, mirroring *time.Timer.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// timer was still pending.
	Stop() bool

	// Reset reschedules the callback to fire after d. It reports whether
	// the timer was still pending.
	Reset(d time.Duration) bool
}

// SystemClock is the production Clock, backed directly by the time package.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool                 { return s.t.Stop() }
func (s systemTimer) Reset(d time.Duration) bool { return s.t.Reset(d) }

// ============================================================================
// Fake clock for tests
// ============================================================================

// FakeClock is a deterministic Clock for tests. Time only moves when Advance
// is called; due timers fire synchronously, in deadline order, on the
// advancing goroutine.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

// NewFakeClock returns a FakeClock positioned at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to fire once Advance moves time past d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{
		clock:    c,
		fn:       fn,
		deadline: c.now.Add(d),
		seq:      c.seq,
		pending:  true,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Callbacks run one at a time with Now() set to
// their own deadline, so a callback that schedules a follow-up timer (a
// poll loop, an animation chain) interleaves correctly.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.nextDueLocked(target)
		if t == nil {
			break
		}
		t.pending = false
		c.now = t.deadline
		fn := t.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending reports how many timers are armed. Useful for asserting that a
// teardown actually canceled its work.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if t.pending {
			n++
		}
	}
	return n
}

// nextDueLocked picks the earliest pending timer with deadline <= target.
// Ties break by registration order.
func (c *FakeClock) nextDueLocked(target time.Time) *fakeTimer {
	var candidates []*fakeTimer
	for _, t := range c.timers {
		if t.pending && !t.deadline.After(target) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].deadline.Equal(candidates[j].deadline) {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].deadline.Before(candidates[j].deadline)
	})
	return candidates[0]
}

type fakeTimer struct {
	clock    *FakeClock
	fn       func()
	deadline time.Time
	seq      int
	pending  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.pending
	t.pending = false
	return was
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.pending
	t.deadline = t.clock.now.Add(d)
	t.pending = true
	return was
}
