package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/basebase-ai/basebase-go/directory"
)

const (
	projectsKey = "basebase:directory:projects" // serialized normalized list
	defaultTTL  = 5 * time.Minute
)

// Cache is a Redis-backed directory.Cache for deployments where several
// processes share one project list.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ directory.Cache = (*Cache)(nil)

// Option modifies a Cache instance.
type Option func(*Cache)

// WithTTL overrides the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// New creates a Redis-backed cache on an existing client.
func New(client *redis.Client, options ...Option) (*Cache, error) {
	if client == nil {
		return nil, errors.New("[rediscache.New] client is required")
	}

	cache := &Cache{
		client: client,
		ttl:    defaultTTL,
	}
	for _, opt := range options {
		opt(cache)
	}
	return cache, nil
}

func (c *Cache) Get(ctx context.Context) ([]directory.Record, bool, error) {
	data, err := c.client.Get(ctx, projectsKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "[Cache.Get] redis get")
	}

	var records []directory.Record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, false, errors.Wrap(err, "[Cache.Get] unmarshal records")
	}
	return records, true, nil
}

func (c *Cache) Put(ctx context.Context, records []directory.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "[Cache.Put] marshal records")
	}
	if err := c.client.Set(ctx, projectsKey, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "[Cache.Put] redis set")
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, projectsKey).Err(); err != nil {
		return errors.Wrap(err, "[Cache.Invalidate] redis del")
	}
	return nil
}
