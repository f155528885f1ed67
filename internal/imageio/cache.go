package imageio

import (
	"context"
	"path/filepath"
	"sync"
)

// Cache shares decoded handles between batch workers. Handles are
// immutable, so one decode serves every job naming the same file.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	h   *Handle
	err error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Load returns the handle for path, decoding it on first use. Decode
// failures are cached too. Errors from a canceled ctx are not.
func (c *Cache) Load(ctx context.Context, path string) (*Handle, error) {
	key := filepath.Clean(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return entry.h, entry.err
	}
	c.mu.RUnlock()

	// Slow path: decode from disk
	h, err := LoadFile(ctx, key)
	if ctx.Err() != nil {
		return h, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		return entry.h, entry.err
	}
	c.items[key] = &cacheEntry{h: h, err: err}
	return h, err
}

// Len is the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
