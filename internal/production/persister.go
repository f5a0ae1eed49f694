// Package production provides host-facing integrations: snapshot
// persistence, commit publishing, and status visualization.
package production

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CellSnapshot is the persisted form of a cell's committed state.
type CellSnapshot struct {
	ID      string    `json:"id" yaml:"id"`
	Cell    string    `json:"cell" yaml:"cell"`
	Value   any       `json:"value" yaml:"value"`
	Commits uint64    `json:"commits" yaml:"commits"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}

// NewCellSnapshot builds a snapshot with a fresh id and timestamp.
func NewCellSnapshot(cell string, value any, commits uint64) CellSnapshot {
	return CellSnapshot{
		ID:      uuid.NewString(),
		Cell:    cell,
		Value:   value,
		Commits: commits,
		SavedAt: time.Now().UTC(),
	}
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(snapshot CellSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.Cell+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(cell string) (CellSnapshot, error) {
	fn := filepath.Join(p.dir, cell+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CellSnapshot{}, fmt.Errorf("cell %q: %w", cell, os.ErrNotExist)
		}
		return CellSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot CellSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return CellSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.Cell = cell // Ensure name
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(snapshot CellSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.Cell+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(cell string) (CellSnapshot, error) {
	fn := filepath.Join(p.dir, cell+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CellSnapshot{}, fmt.Errorf("cell %q: %w", cell, os.ErrNotExist)
		}
		return CellSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot CellSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return CellSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.Cell = cell
	return snapshot, nil
}
