// Package core defines the commit-side contracts of the poll loop: the
// Pollable interface cells satisfy, the bounded commit journal, and the
// registry of named cells.
package core

import (
	"errors"
	"time"

	"github.com/statelab/pollstate/internal/primitives"
)

var (
	ErrNotFound = errors.New("cell not found")
	ErrExists   = errors.New("cell already registered")
)

// Pollable is the loop-facing surface of a state cell. Poll performs at
// most one commit: if the pending value diverges from the current value it
// commits, renders, and returns the view with true; otherwise it reports
// false and renders nothing.
type Pollable interface {
	Name() string
	Phase() primitives.Phase
	Commits() uint64
	Poll(tick uint64) (primitives.View, bool)
}

// CommitRecord captures a single committed render for diagnostics.
type CommitRecord struct {
	Tick uint64          `json:"tick" yaml:"tick"`
	Cell string          `json:"cell" yaml:"cell"`
	View primitives.View `json:"view" yaml:"view"`
	At   time.Time       `json:"at" yaml:"at"`
}
