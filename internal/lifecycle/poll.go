// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"sync"
	"time"

	"github.com/jeranaias/labdeck/internal/util"
)

// Default poll cadence for the bootstrap race against the host's first
// render.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollTimeout  = 10 * time.Second
)

// Poller retries a check on a fixed interval until it succeeds or a hard
// timeout expires. It is the bounded answer to "the element I need may
// not exist yet": polling always terminates.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
	Clock    util.Clock
}

// Run checks immediately, then every Interval. It stops when check
// returns true, when the timeout would be exceeded (calling expired, once),
// or when the returned cancel func runs. check and expired are called on
// the clock's timer goroutine after the first synchronous check.
func (p Poller) Run(check func() bool, expired func()) (cancel func()) {
	clock := p.Clock
	if clock == nil {
		clock = util.SystemClock{}
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	deadline := clock.Now().Add(timeout)

	var mu sync.Mutex
	var timer util.Timer
	stopped := false

	var attempt func()
	attempt = func() {
		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		mu.Unlock()

		if check() {
			mu.Lock()
			stopped = true
			mu.Unlock()
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if clock.Now().Add(interval).After(deadline) {
			stopped = true
			if expired != nil {
				// Release the lock around the callback so it may
				// call cancel without deadlocking.
				mu.Unlock()
				expired()
				mu.Lock()
			}
			return
		}
		timer = clock.AfterFunc(interval, attempt)
	}

	attempt()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
}
