package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore keeps one JSON document per file: {"<owner>": {"wordleStats": {...}}}.
// It is the local-storage equivalent for the terminal client.
type fileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a Store persisting to the JSON file at path.
// The file and its directory are created on first Save.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

type fileDoc map[string]map[string]json.RawMessage

func (f *fileStore) read() (fileDoc, error) {
	doc := fileDoc{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *fileStore) Load(_ context.Context, ownerID string) (Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return Stats{}, err
	}
	return decode(doc[ownerID][Key])
}

func (f *fileStore) Save(_ context.Context, ownerID string, s Stats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if doc[ownerID] == nil {
		doc[ownerID] = map[string]json.RawMessage{}
	}
	doc[ownerID][Key] = blob

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
