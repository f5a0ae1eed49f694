package extensibility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource watches a file and writes its contents to set whenever the
// file changes. It watches the parent directory so editors that replace
// the file (write temp + rename) are still observed.
type FileSource struct {
	path string
	set  func(string)
}

// NewFileSource creates a source for path. The file does not need to exist
// yet; the first write to it produces the first update.
func NewFileSource(path string, set func(string)) *FileSource {
	return &FileSource{path: filepath.Clean(path), set: set}
}

// Run watches until ctx is cancelled. An initial read is performed if the
// file already exists, so the cell starts from the on-disk value.
func (s *FileSource) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	if data, err := os.ReadFile(s.path); err == nil {
		s.set(string(data))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			data, err := os.ReadFile(s.path)
			if err != nil {
				// File may be mid-replace; the next event retries.
				continue
			}
			s.set(string(data))
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient here; keep watching.
		}
	}
}
