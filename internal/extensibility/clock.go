// Package extensibility provides the pluggable collaborators of the poll
// loop: injectable time and update sources that feed cell writes from the
// hosting environment.
package extensibility

import "time"

// Ticker delivers ticks on a channel and can be stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock provides time-related operations. The interface enables dependency
// injection so tick timing is testable without sleeping.
type Clock interface {
	NewTicker(d time.Duration) Ticker
	Now() time.Time
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

func (systemClock) Now() time.Time { return time.Now() }

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }
