package pollstate

import "github.com/statelab/pollstate/internal/extensibility"

// Clock supplies tick timing to a loop. Implement it to control time in
// tests or to drive ticks from a host scheduler.
type Clock = extensibility.Clock

// Ticker is the clock's tick channel plus its stop handle.
type Ticker = extensibility.Ticker

// SystemClock is the default Clock backed by the standard library.
var SystemClock = extensibility.SystemClock
