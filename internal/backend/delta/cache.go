package delta

import (
	"fmt"
	"sync"

	"github.com/openaccel/accml-core/internal/model"
)

// Cache stores the last-known reference value per underlying ReadCommand.
// There is no TTL and no eviction; the owner clears it wholesale when the
// machine state changes underneath the proxy. Lifetime is one proxy.
//
// All methods are safe for concurrent use.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[model.ReadCommand]model.Value
}

// NewCache creates an empty named cache. The name only appears in logs
// and String().
func NewCache(name string) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[model.ReadCommand]model.Value),
	}
}

// Get returns the cached value for the key, or nil when absent.
func (c *Cache) Get(key model.ReadCommand) model.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

// Set stores a value under the key.
func (c *Cache) Set(key model.ReadCommand, value model.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear drops every entry. The next delta operation re-establishes its
// baseline from the backend.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[model.ReadCommand]model.Value)
}

// Keys returns the currently cached keys.
func (c *Cache) Keys() []model.ReadCommand {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]model.ReadCommand, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of cached references.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) String() string {
	return fmt.Sprintf("Cache(name=%s, entries=%d)", c.name, c.Len())
}
