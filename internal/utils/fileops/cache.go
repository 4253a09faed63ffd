package fileops

import (
	"os"
	"sync"
	"time"
)

// cacheItem holds a cached value together with the file metadata that was
// current when it was stored.
type cacheItem[T any] struct {
	value   T
	modTime time.Time
	size    int64
}

// Cache is a generic cache keyed by file path with mtime/size invalidation.
type Cache[V any] struct {
	items map[string]*cacheItem[V]
	mutex sync.RWMutex
}

// NewCache creates an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{items: make(map[string]*cacheItem[V])}
}

// Get retrieves a cached value, dropping it if the backing file changed
// since it was stored.
func (c *Cache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	stat, err := os.Stat(path)
	if err != nil {
		c.Delete(path)
		return zero, false
	}
	if stat.ModTime().After(item.modTime) || stat.Size() != item.size {
		c.Delete(path)
		return zero, false
	}
	return item.value, true
}

// Set stores a value keyed by path, recording the file's current metadata.
// Values for files that cannot be stat'd are not cached.
func (c *Cache[V]) Set(path string, value V) {
	stat, err := os.Stat(path)
	if err != nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items[path] = &cacheItem[V]{
		value:   value,
		modTime: stat.ModTime(),
		size:    stat.Size(),
	}
}

// Delete removes an entry from the cache.
func (c *Cache[V]) Delete(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, path)
}

// Size returns the number of cached entries.
func (c *Cache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
