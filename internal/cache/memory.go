package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryClient implementa Client sobre go-cache. Para desarrollo y tests.
type memoryClient struct {
	prefix string
	inner  *gocache.Cache
}

// NewMemory crea un cache en memoria. defaultTTL aplica cuando Set recibe 0;
// si defaultTTL es 0, esos valores no expiran.
func NewMemory(prefix string, defaultTTL time.Duration) Client {
	def := gocache.NoExpiration
	if defaultTTL > 0 {
		def = defaultTTL
	}
	return &memoryClient{
		prefix: prefix,
		inner:  gocache.New(def, 10*time.Minute),
	}
}

func (c *memoryClient) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *memoryClient) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.inner.Get(c.key(key))
	if !ok {
		return "", ErrNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrNotFound
	}
	return s, nil
}

func (c *memoryClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		c.inner.SetDefault(c.key(key), value)
		return nil
	}
	c.inner.Set(c.key(key), value, ttl)
	return nil
}

func (c *memoryClient) Delete(ctx context.Context, key string) error {
	c.inner.Delete(c.key(key))
	return nil
}

func (c *memoryClient) Ping(ctx context.Context) error { return nil }

func (c *memoryClient) Close() error {
	c.inner.Flush()
	return nil
}
