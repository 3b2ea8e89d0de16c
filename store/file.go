package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a store persisted to a single JSON file. Every mutation rewrites
// the file atomically (write to temp, rename). Suited to CLI use where a
// Redis is not available; not meant for concurrent processes sharing one
// file.
type File struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// NewFile opens (or creates) a file-backed store at path. An existing file
// is loaded eagerly; a missing file is treated as an empty store.
func NewFile(path string) (*File, error) {
	f := &File{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.entries); err != nil {
			return nil, fmt.Errorf("parsing store file %s: %w", path, err)
		}
	}
	return f, nil
}

// Get retrieves a value. Returns ErrNotFound for absent keys.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a value and persists the file.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = value
	return f.persist()
}

// Keys returns all keys with the given prefix, in unspecified order.
func (f *File) Keys(_ context.Context, prefix string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var keys []string
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// GetMulti bulk-reads the given keys. Absent keys are omitted from the
// result.
func (f *File) GetMulti(_ context.Context, keys []string) (map[string]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := f.entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// DeleteMulti removes the given keys and persists the file.
func (f *File) DeleteMulti(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, k := range keys {
		delete(f.entries, k)
	}
	return f.persist()
}

// Len returns the number of entries in the store.
func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// persist writes the entries to disk atomically (caller holds the lock).
func (f *File) persist() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".lingo-store-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

// Verify File implements Store
var _ Store = (*File)(nil)
