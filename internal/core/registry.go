package core

import (
	"fmt"
	"sort"
	"sync"
)

// Registry tracks attached cells by name. Registration order is preserved
// so the loop polls cells deterministically.
type Registry struct {
	mu    sync.RWMutex
	cells map[string]Pollable
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cells: make(map[string]Pollable)}
}

// Register adds a cell under its name. Returns ErrExists on a duplicate.
func (r *Registry) Register(cell Pollable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := cell.Name()
	if _, ok := r.cells[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrExists)
	}
	r.cells[name] = cell
	r.order = append(r.order, name)
	return nil
}

// Get returns the cell registered under name.
func (r *Registry) Get(name string) (Pollable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cell, ok := r.cells[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrNotFound)
	}
	return cell, nil
}

// All returns the cells in registration order.
func (r *Registry) All() []Pollable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Pollable, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.cells[name])
	}
	return out
}

// Names returns registered cell names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// Len returns the number of registered cells.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cells)
}
