package storage

import "sync"

// memCache is the write-through memory cache backing the synchronous read
// path. It is strictly scoped to one Service instance and is never shared
// across namespaces; its entries live only as long as the instance.
type memCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[string]interface{}{},
	}
}

// read returns the last observed value for a physical key. It never touches
// the backend and never fails; a miss is reported through ok.
func (c *memCache) read(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *memCache) write(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *memCache) evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memCache) evictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]interface{}{}
}
