package pollstate

import (
	"time"

	"github.com/statelab/pollstate/internal/extensibility"
)

// Update sources feed values into a cell's Set from the hosting
// environment. They only ever write the pending slot, so last-write-wins
// semantics apply unchanged.

// ChannelSource forwards values received on a channel to a cell.
type ChannelSource[T any] = extensibility.ChannelSource[T]

// NewChannelSource creates a source that forwards values from ch to set,
// typically a cell's Set method.
func NewChannelSource[T any](ch <-chan T, set func(T)) *ChannelSource[T] {
	return extensibility.NewChannelSource(ch, set)
}

// TimerSource periodically computes a value and writes it to a cell.
type TimerSource[T any] = extensibility.TimerSource[T]

// NewTimerSource creates a source that calls next every d and forwards the
// result to set. A nil clock means the system clock.
func NewTimerSource[T any](clock Clock, d time.Duration, next func(now time.Time) T, set func(T)) *TimerSource[T] {
	return extensibility.NewTimerSource(clock, d, next, set)
}

// FileSource watches a file and writes its contents to a cell on change.
type FileSource = extensibility.FileSource

// NewFileSource creates a source for path; set receives the file contents.
func NewFileSource(path string, set func(string)) *FileSource {
	return extensibility.NewFileSource(path, set)
}
