package pollstate

import (
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"

	"github.com/statelab/pollstate/internal/primitives"
)

// View is an opaque UI description produced by a render function.
type View = primitives.View

// Phase reports whether a cell has an uncommitted pending value.
type Phase = primitives.Phase

const (
	PhaseIdle  = primitives.PhaseIdle
	PhaseDirty = primitives.PhaseDirty
)

// RenderFunc maps a committed value to a UI description. It must be pure:
// the loop may call it at any tick and uses nothing but its return value.
type RenderFunc[T any] func(v T) View

// CellOption configures a Cell at construction.
type CellOption[T any] func(*Cell[T])

// WithEqual overrides the divergence check. The default compares values
// with go-cmp, which handles nested structs, maps, and slices; supply a
// custom comparator for types containing unexported fields or functions.
func WithEqual[T any](eq func(a, b T) bool) CellOption[T] {
	return func(c *Cell[T]) {
		if eq != nil {
			c.eq = eq
		}
	}
}

// Cell is one piece of reactive state: a committed (current) value plus a
// pending value. Set writes the pending side only; commits happen
// exclusively when a poll loop ticks. All methods are safe for concurrent
// use.
type Cell[T any] struct {
	name   string
	eq     func(a, b T) bool
	slot   *primitives.Slot[T]
	render RenderFunc[T]

	mu       sync.Mutex
	lastView View
}

// NewCell creates a cell with both slots holding initial (phase Idle).
// A nil render falls back to fmt formatting of the value.
func NewCell[T any](name string, initial T, render RenderFunc[T], opts ...CellOption[T]) *Cell[T] {
	c := &Cell[T]{
		name:   name,
		render: render,
		eq:     func(a, b T) bool { return cmp.Equal(a, b) },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.render == nil {
		c.render = func(v T) View { return View(fmt.Sprintf("%v", v)) }
	}
	c.slot = primitives.NewSlot(initial, c.eq)
	return c
}

// Name returns the cell's name, unique within a loop.
func (c *Cell[T]) Name() string { return c.name }

// Set records v as the requested next value. It never blocks and has no
// immediate visible effect; any previously pending, not-yet-committed value
// is overwritten (last-write-wins).
func (c *Cell[T]) Set(v T) {
	c.slot.Set(v)
}

// Value returns the committed value, i.e. the state reflected by the last
// completed render.
func (c *Cell[T]) Value() T {
	return c.slot.Current()
}

// Pending returns the most recently requested value, which may equal Value.
func (c *Cell[T]) Pending() T {
	return c.slot.Pending()
}

// Phase reports Idle when pending equals current and Dirty otherwise.
func (c *Cell[T]) Phase() Phase {
	return c.slot.Phase()
}

// Commits returns the number of commits performed on this cell.
func (c *Cell[T]) Commits() uint64 {
	return c.slot.Commits()
}

// LastView returns the view produced by the most recent commit, or the
// empty View before the first one.
func (c *Cell[T]) LastView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastView
}

// Poll performs at most one commit: if the pending value diverges from the
// current value it commits, renders the new value, and returns the view
// with true. An idle cell reports false and renders nothing. Called by the
// poll loop on every tick; hosts driving their own scheduler may call it
// directly.
func (c *Cell[T]) Poll(tick uint64) (View, bool) {
	v, committed := c.slot.Commit()
	if !committed {
		return "", false
	}
	view := c.render(v)
	c.mu.Lock()
	c.lastView = view
	c.mu.Unlock()
	return view, true
}
