// Package pollstate implements polling-based reactivity: state cells hold a
// committed value and a pending value, and a poll loop ticks on a fixed
// interval, committing and re-rendering any cell whose pending value has
// diverged.
//
// Writes never take effect immediately. Set records the requested value in
// the pending slot (last-write-wins, never queued); the next tick compares
// pending against current and, on a difference, commits and invokes the
// cell's render function with the new value. Equal values cost nothing: no
// commit, no render.
//
// # Example Usage
//
//	color := pollstate.NewCell("color", "red", func(v string) pollstate.View {
//		return pollstate.View("background: " + v)
//	})
//	loop := pollstate.NewLoop(pollstate.Config{Interval: 50 * time.Millisecond})
//	loop.Attach(color)
//	loop.Start(ctx)
//	defer loop.Stop()
//
//	color.Set("blue")
//	color.Set("green") // overwrites "blue"; only "green" commits
//
// # Trade-offs vs Push-Based Reactivity
//
// Updates are visible at most one interval late (bounded staleness)
// Redundant writes between ticks collapse into one commit and one render
// No dependency tracking, no diffing: every commit is a full redraw
//
// Hosts that own their own scheduler can skip Start entirely and drive the
// loop with Tick.
package pollstate
