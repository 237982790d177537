package memory

import (
	"context"
	"sync"

	"github.com/ersincine/automata/pkg/ports"
)

// Cache implements ports.QueryCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]bool
	mu   sync.RWMutex
}

// NewCache creates a new in-memory query cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]bool),
	}
}

// Get returns the verdict recorded for key.
func (c *Cache) Get(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	member, ok := c.data[key]
	if !ok {
		return false, ports.ErrCacheMiss
	}
	return member, nil
}

// Put records the verdict for key.
func (c *Cache) Put(ctx context.Context, key string, member bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = member
	return nil
}

// Len reports how many verdicts are stored.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
