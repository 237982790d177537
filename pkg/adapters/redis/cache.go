package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/ersincine/automata/pkg/ports"
)

// Cache implements ports.QueryCache using Redis, so replicas serving
// the same system directory share verdicts.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached verdicts.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached verdicts.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a new Redis cache from a connection URL such as
// "redis://localhost:6379/0".
func NewFromURL(raw string, opts ...Option) (*Cache, error) {
	parsed, err := backend.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(parsed), opts...), nil
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "automata:verdict:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get returns the verdict recorded for key.
func (c *Cache) Get(ctx context.Context, key string) (bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, backend.Nil) {
		return false, ports.ErrCacheMiss
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	return val == "1", nil
}

// Put records the verdict for key.
func (c *Cache) Put(ctx context.Context, key string, member bool) error {
	val := "0"
	if member {
		val = "1"
	}
	if err := c.client.Set(ctx, c.key(key), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
