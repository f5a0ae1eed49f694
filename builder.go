package pollstate

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LoopBuilder provides a fluent API for assembling a loop and its cells.
// Configuration errors are collected and reported by Build, so call chains
// stay unconditional.
type LoopBuilder struct {
	cfg   Config
	cells []Pollable
	names map[string]bool
	errs  []error
}

// NewLoopBuilder creates a builder with default configuration.
func NewLoopBuilder() *LoopBuilder {
	return &LoopBuilder{names: make(map[string]bool)}
}

// Interval sets the tick cadence.
func (b *LoopBuilder) Interval(d time.Duration) *LoopBuilder {
	if d <= 0 {
		b.errs = append(b.errs, fmt.Errorf("interval must be positive, got %v", d))
		return b
	}
	b.cfg.Interval = d
	return b
}

// JournalSize bounds the commit journal.
func (b *LoopBuilder) JournalSize(n int) *LoopBuilder {
	b.cfg.JournalSize = n
	return b
}

// Logger sets the loop logger.
func (b *LoopBuilder) Logger(logger *zap.Logger) *LoopBuilder {
	b.cfg.Logger = logger
	return b
}

// Clock sets the tick clock.
func (b *LoopBuilder) Clock(clock Clock) *LoopBuilder {
	b.cfg.Clock = clock
	return b
}

// Publish attaches a commit hub. Callers keep their own reference to
// subscribe; a nil hub creates a fresh one, reachable via Loop.Hub.
func (b *LoopBuilder) Publish(hub *Hub) *LoopBuilder {
	if hub == nil {
		hub = NewHub()
	}
	b.cfg.Hub = hub
	return b
}

// Cell attaches a pre-built cell.
func (b *LoopBuilder) Cell(cell Pollable) *LoopBuilder {
	name := cell.Name()
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("cell name must not be empty"))
		return b
	}
	if b.names[name] {
		b.errs = append(b.errs, fmt.Errorf("duplicate cell name %q", name))
		return b
	}
	b.names[name] = true
	b.cells = append(b.cells, cell)
	return b
}

// StringCell creates and attaches a string-valued cell, the common case for
// UI state like colors and labels.
func (b *LoopBuilder) StringCell(name, initial string, render RenderFunc[string]) *LoopBuilder {
	return b.Cell(NewCell(name, initial, render))
}

// Build validates the configuration and constructs the loop with all cells
// attached.
func (b *LoopBuilder) Build() (*Loop, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid loop configuration: %w", b.errs[0])
	}

	loop := NewLoop(b.cfg)
	if err := loop.Attach(b.cells...); err != nil {
		return nil, err
	}
	return loop, nil
}
