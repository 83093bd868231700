// Package cache is the local mirror of the remote store: a flat string-keyed
// collection of opaque JSON blobs persisted to a single file, so the
// application stays usable when the database is unreachable.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type FileCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage
	logger  *slog.Logger
}

// NewFileCache loads the cache file at path, creating its directory when
// needed. A missing or malformed file is not an error: the cache starts
// empty and the problem is only logged.
func NewFileCache(path string, logger *slog.Logger) (*FileCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &FileCache{
		path:    path,
		entries: make(map[string]json.RawMessage),
		logger:  logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache file unreadable, starting empty", "path", path, "error", err)
		}
		return c, nil
	}
	if err := json.Unmarshal(raw, &c.entries); err != nil {
		logger.Warn("cache file malformed, starting empty", "path", path, "error", err)
		c.entries = make(map[string]json.RawMessage)
	}
	return c, nil
}

// Put stores v under key and persists the whole cache to disk.
func (c *FileCache) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %q: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return c.persistLocked()
}

// Get decodes the entry under key into v. A missing entry returns false; a
// malformed entry is treated as absent and logged.
func (c *FileCache) Get(key string, v any) bool {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.logger.Warn("malformed cache entry, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// Path returns the backing file's path.
func (c *FileCache) Path() string {
	return c.path
}

// Delete removes the entry under key and persists.
func (c *FileCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return nil
	}
	delete(c.entries, key)
	return c.persistLocked()
}

// Keys returns every key currently in the cache.
func (c *FileCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// persistLocked writes the cache file via a temp file and rename, so a crash
// mid-write never corrupts the previous contents. Caller holds c.mu.
func (c *FileCache) persistLocked() error {
	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
