package pollstate

import "github.com/statelab/pollstate/internal/production"

// CellSnapshot is the persisted form of a cell's committed state.
type CellSnapshot = production.CellSnapshot

// JSONPersister saves and loads cell snapshots as JSON files.
type JSONPersister = production.JSONPersister

// YAMLPersister saves and loads cell snapshots as YAML files.
type YAMLPersister = production.YAMLPersister

// NewJSONPersister creates a JSON persister rooted at dir.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	return production.NewJSONPersister(dir)
}

// NewYAMLPersister creates a YAML persister rooted at dir.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	return production.NewYAMLPersister(dir)
}

// Snapshot captures a cell's committed state for persistence. Pending,
// not-yet-committed values are not part of a snapshot.
func Snapshot[T any](c *Cell[T]) CellSnapshot {
	return production.NewCellSnapshot(c.Name(), c.Value(), c.Commits())
}
