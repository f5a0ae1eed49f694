package extensibility

import (
	"context"
	"time"
)

// An update source feeds values into a cell's update function from the
// hosting environment. Sources never touch the committed value; they only
// write the pending slot via the set callback, so ordinary last-write-wins
// semantics apply.

// ChannelSource forwards values received on a channel to set.
type ChannelSource[T any] struct {
	ch  <-chan T
	set func(T)
}

// NewChannelSource creates a source reading from ch. The channel should be
// buffered if the producer must not block on a busy host.
func NewChannelSource[T any](ch <-chan T, set func(T)) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch, set: set}
}

// Run forwards values until ctx is cancelled or the channel is closed.
func (s *ChannelSource[T]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-s.ch:
			if !ok {
				return
			}
			s.set(v)
		}
	}
}

// TimerSource periodically computes a value and writes it to set.
// Useful for clock-driven cells (elapsed time, countdowns).
type TimerSource[T any] struct {
	clock Clock
	d     time.Duration
	next  func(now time.Time) T
	set   func(T)
}

// NewTimerSource creates a source that calls next every d and forwards the
// result to set. clock may be nil, in which case SystemClock is used.
func NewTimerSource[T any](clock Clock, d time.Duration, next func(now time.Time) T, set func(T)) *TimerSource[T] {
	if clock == nil {
		clock = SystemClock
	}
	return &TimerSource[T]{clock: clock, d: d, next: next, set: set}
}

// Run emits values until ctx is cancelled.
func (s *TimerSource[T]) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			s.set(s.next(now))
		}
	}
}
