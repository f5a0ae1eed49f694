// Package testutil provides test helpers: a manually advanced clock and
// loop drivers so the same scenario suite runs against the ticker-driven
// loop and a manually stepped one.
package testutil

import (
	"sync"
	"time"

	"github.com/statelab/pollstate"
)

// ManualClock is a Clock whose tickers fire only when Fire is called.
// Time reported by Now advances only through Advance.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward without firing tickers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTicker returns a ticker that fires only on Fire. The requested period
// is recorded but otherwise ignored.
func (c *ManualClock) NewTicker(d time.Duration) pollstate.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{period: d, ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

// Fire advances the clock by each ticker's period and delivers one tick to
// every active ticker, blocking until delivered or the ticker stops.
func (c *ManualClock) Fire() {
	c.mu.Lock()
	tickers := make([]*manualTicker, len(c.tickers))
	copy(tickers, c.tickers)
	var longest time.Duration
	for _, t := range tickers {
		if t.period > longest {
			longest = t.period
		}
	}
	c.now = c.now.Add(longest)
	now := c.now
	c.mu.Unlock()

	for _, t := range tickers {
		t.fire(now)
	}
}

type manualTicker struct {
	period time.Duration
	ch     chan time.Time

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		t.stopped = true
		if t.done != nil {
			close(t.done)
		}
	}
}

func (t *manualTicker) fire(now time.Time) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.done == nil {
		t.done = make(chan struct{})
	}
	done := t.done
	t.mu.Unlock()

	select {
	case t.ch <- now:
	case <-done:
	}
}
