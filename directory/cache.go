package directory

import (
	"context"
	"sync"
)

// Cache holds the last normalized project list. A cache miss or a cache
// failure only ever costs a re-fetch; the cache is never authoritative.
type Cache interface {
	Get(ctx context.Context) ([]Record, bool, error)
	Put(ctx context.Context, records []Record) error
	Invalidate(ctx context.Context) error
}

// InMemoryCache is the default single-process cache.
type InMemoryCache struct {
	mu      sync.RWMutex
	records []Record
	primed  bool
}

var _ Cache = (*InMemoryCache)(nil)

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{}
}

func (c *InMemoryCache) Get(_ context.Context) ([]Record, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.primed {
		return nil, false, nil
	}
	return append([]Record(nil), c.records...), true, nil
}

func (c *InMemoryCache) Put(_ context.Context, records []Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append([]Record(nil), records...)
	c.primed = true
	return nil
}

func (c *InMemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
	c.primed = false
	return nil
}
