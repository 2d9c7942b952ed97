package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

// jsonCollection is a whole-file JSON array on disk. Every mutation is a full
// read-modify-write under the collection mutex, which serializes writers and
// removes the lost-update race of unsynchronized whole-file rewrites. A
// missing or corrupt file degrades to an empty collection with a logged
// warning instead of a fatal error.
type jsonCollection[T any] struct {
	path string
	mu   sync.Mutex
}

func newJSONCollection[T any](path string) *jsonCollection[T] {
	return &jsonCollection[T]{path: path}
}

func (c *jsonCollection[T]) load() []*T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read collection %s, treating as empty: %v", c.path, err)
		}
		return nil
	}

	var records []*T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("Corrupt collection %s, treating as empty: %v", c.path, err)
		return nil
	}
	return records
}

func (c *jsonCollection[T]) save(records []*T) error {
	if records == nil {
		records = []*T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.StorageFault("Failed to encode collection", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return errors.StorageFault("Failed to create data directory", err)
	}

	// Write-then-rename keeps a crashed rewrite from corrupting the file.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.StorageFault("Failed to write collection", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return errors.StorageFault("Failed to replace collection", err)
	}
	return nil
}

// view runs fn against a snapshot of the collection under the lock.
func (c *jsonCollection[T]) view(fn func(records []*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.load())
}

// mutate runs fn under the lock and persists the returned records.
func (c *jsonCollection[T]) mutate(fn func(records []*T) ([]*T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := fn(c.load())
	if err != nil {
		return err
	}
	return c.save(records)
}
