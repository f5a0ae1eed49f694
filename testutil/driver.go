package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/statelab/pollstate"
)

// LoopDriver abstracts how ticks reach a loop, so one scenario suite can
// run against both the ticker-driven goroutine and direct Tick calls.
type LoopDriver interface {
	Start() error
	Stop() error
	// Step causes n ticks to complete before returning.
	Step(n int) error
	Loop() *pollstate.Loop
}

// ManualDriver drives a loop by calling Tick directly. Start and Stop are
// no-ops; ticks happen synchronously inside Step.
type ManualDriver struct {
	loop *pollstate.Loop
}

// NewManualDriver wraps an unstarted loop.
func NewManualDriver(loop *pollstate.Loop) *ManualDriver {
	return &ManualDriver{loop: loop}
}

func (d *ManualDriver) Start() error { return nil }
func (d *ManualDriver) Stop() error  { return nil }

func (d *ManualDriver) Step(n int) error {
	for i := 0; i < n; i++ {
		d.loop.Tick()
	}
	return nil
}

func (d *ManualDriver) Loop() *pollstate.Loop { return d.loop }

// ClockDriver starts the loop's tick goroutine against a ManualClock and
// fires the clock to step. Exercises the real goroutine path without
// sleeping on wall-clock intervals.
type ClockDriver struct {
	loop  *pollstate.Loop
	clock *ManualClock
}

// NewClockDriver wraps a loop built with the given ManualClock.
func NewClockDriver(loop *pollstate.Loop, clock *ManualClock) *ClockDriver {
	return &ClockDriver{loop: loop, clock: clock}
}

func (d *ClockDriver) Start() error {
	return d.loop.Start(context.Background())
}

func (d *ClockDriver) Stop() error {
	return d.loop.Stop()
}

func (d *ClockDriver) Step(n int) error {
	for i := 0; i < n; i++ {
		target := d.loop.TickCount() + 1
		d.clock.Fire()
		if err := waitForTicks(d.loop, target, time.Second); err != nil {
			return err
		}
	}
	return nil
}

func (d *ClockDriver) Loop() *pollstate.Loop { return d.loop }

// waitForTicks polls until the loop has completed at least target ticks.
func waitForTicks(loop *pollstate.Loop, target uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if loop.TickCount() >= target {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for tick %d (at %d)", target, loop.TickCount())
}
