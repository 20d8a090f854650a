// Package storage is the JSON blob store behind the file/cloud operating
// modes. A named blob ("content.json", "categories.json", ...) is read and
// written as a whole; there is no partial update at this layer.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound reports that a blob exists in no backend.
var ErrNotFound = errors.New("blob not found")

// Blob reads and writes named JSON documents.
type Blob interface {
	// ReadJSON decodes the named blob into v. Returns ErrNotFound when the
	// blob does not exist anywhere.
	ReadJSON(ctx context.Context, name string, v any) error
	// WriteJSON persists v as the named blob.
	WriteJSON(ctx context.Context, name string, v any) error
}

// FileStore keeps blobs as pretty-printed JSON files in a single directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) ReadJSON(_ context.Context, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %v", name, err)
	}
	return nil
}

func (f *FileStore) WriteJSON(_ context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(f.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", name, err)
	}
	return nil
}
