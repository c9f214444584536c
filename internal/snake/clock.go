package snake

import (
	"sync"
	"time"
)

// Clock is a restartable fixed-interval tick scheduler. It owns its
// timer as a scoped resource: Stop releases it and no callback fires
// afterwards, Reschedule swaps the cadence without carrying over any
// remainder of the old interval. The callback runs on the timer
// goroutine; callers are expected to hand the tick off to their own
// event loop rather than mutate shared state in it.
type Clock struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	timer    *time.Timer
	running  bool
}

// NewClock creates a stopped clock that invokes fn on every tick.
func NewClock(fn func()) *Clock {
	return &Clock{fn: fn}
}

// Start begins ticking every interval. Starting a running clock restarts
// it with the new interval.
func (c *Clock) Start(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.interval = interval
	c.running = true
	c.timer = time.AfterFunc(interval, c.fire)
}

// Stop cancels the pending tick. Idempotent; safe on a never-started clock.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Reschedule changes the tick interval immediately: the currently
// pending tick is discarded and the next one fires a full new interval
// from now. No-op on a stopped clock.
func (c *Clock) Reschedule(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.stopLocked()
	c.interval = interval
	c.running = true
	c.timer = time.AfterFunc(interval, c.fire)
}

// Running reports whether the clock has a pending tick.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Clock) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.running = false
}

func (c *Clock) fire() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.timer = time.AfterFunc(c.interval, c.fire)
	c.mu.Unlock()

	c.fn()
}
