package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"realestate-backend/pkg/cache"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-process cache used when redis is disabled. Entries
// share one TTL fixed at construction; the per-call ttl is ignored.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

var _ cache.Cache = (*MemoryCache)(nil)

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	c.lru.Add(key, raw)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}

// DeletePattern matches keys with path.Match glob syntax.
func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	for _, k := range c.lru.Keys() {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			c.lru.Remove(k)
		}
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Len() int { return c.lru.Len() }
