package mem

import (
	"sync"
	"time"

	"github.com/c2fo/docstore/cache"
	"github.com/c2fo/docstore/options"
)

type entry struct {
	value   []byte
	written time.Time
}

// Cache implements cache.Cache in memory.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	maxEntries int
	now        func() time.Time
}

var _ cache.Cache = (*Cache)(nil)

// New initializer for Cache struct.
func New(opts ...options.NewClientOption[Cache]) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}

	options.ApplyOptions(c, opts...)

	return c
}

// Get returns a copy of the stored value.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value, evicting the oldest entry if the cache is full.
func (c *Cache) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = &entry{
		value:   append([]byte(nil), value...),
		written: c.now(),
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	return nil
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the stored keys in no particular order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// evictOldest must be called with mu held.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.written.Before(oldest) {
			oldestKey = k
			oldest = e.written
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
