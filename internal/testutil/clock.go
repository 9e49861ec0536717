package testutil

import (
	"sync"
	"time"

	"github.com/mrz1836/cutline/internal/clock"
)

// FakeClock is a clock.Clock whose time only moves when Advance is called.
// Tickers created from it fire synchronously inside Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

// NewFakeClock returns a FakeClock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker returns a FakeTicker that fires every d of fake time.
func (c *FakeClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{
		period: d,
		next:   c.now.Add(d),
		// Unbuffered so Advance blocks until the consumer has taken each tick.
		ch:   make(chan time.Time),
		stop: make(chan struct{}),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward by d, delivering every tick that falls
// inside the interval in order. Delivery blocks until a receiver takes the
// tick or the ticker is stopped.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	tickers := append([]*FakeTicker(nil), c.tickers...)
	c.mu.Unlock()

	for {
		var due *FakeTicker
		var at time.Time
		for _, t := range tickers {
			next, ok := t.nextDue()
			if !ok || next.After(target) {
				continue
			}
			if due == nil || next.Before(at) {
				due, at = t, next
			}
		}
		if due == nil {
			break
		}
		c.mu.Lock()
		c.now = at
		c.mu.Unlock()
		due.fire(at)
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// Tickers returns the number of tickers that have not been stopped.
func (c *FakeClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if _, ok := t.nextDue(); ok {
			n++
		}
	}
	return n
}

// FakeTicker is the clock.Ticker returned by FakeClock.
type FakeTicker struct {
	mu      sync.Mutex
	period  time.Duration
	next    time.Time
	stopped bool
	ch      chan time.Time
	stop    chan struct{}
	once    sync.Once
}

// C returns the tick channel.
func (t *FakeTicker) C() <-chan time.Time { return t.ch }

// Stop turns off the ticker. A pending delivery inside Advance is abandoned.
func (t *FakeTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
	t.once.Do(func() { close(t.stop) })
}

func (t *FakeTicker) nextDue() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next, !t.stopped
}

func (t *FakeTicker) fire(at time.Time) {
	t.mu.Lock()
	t.next = at.Add(t.period)
	t.mu.Unlock()

	select {
	case t.ch <- at:
	case <-t.stop:
	}
}

var _ clock.Clock = (*FakeClock)(nil)
