package asset

import (
	"path/filepath"
	"sync"
)

// Cache keeps loaded assets by file path.
type Cache struct {
	opts []Option

	mu     sync.Mutex
	data   map[string]*Asset
	hits   int
	misses int
}

// NewCache creates a cache whose loads use opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		opts: opts,
		data: make(map[string]*Asset),
	}
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Get returns the cached asset for path, loading it on a miss.
func (c *Cache) Get(path string) (*Asset, error) {
	key := cacheKey(path)

	c.mu.Lock()
	if a, ok := c.data[key]; ok {
		c.hits++
		c.mu.Unlock()
		return a, nil
	}
	c.misses++
	c.mu.Unlock()

	a, err := LoadFile(path, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data[key] = a
	c.mu.Unlock()
	return a, nil
}

// Invalidate drops path so the next Get reloads it.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, cacheKey(path))
}

// Reload replaces the cached asset for path with a fresh load. On error
// the previous entry is kept.
func (c *Cache) Reload(path string) (*Asset, error) {
	a, err := LoadFile(path, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data[cacheKey(path)] = a
	c.mu.Unlock()
	return a, nil
}

// Clear drops every entry and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Asset)
	c.hits = 0
	c.misses = 0
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
