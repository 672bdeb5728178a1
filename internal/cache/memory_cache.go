package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	val     []byte
	expires time.Time
}

// MemoryCache is the single-process stand-in used when REDIS_ADDR is unset.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string]entry{}, now: time.Now}
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(key, dst, false)
}

func (c *MemoryCache) TakeJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(key, dst, true)
}

func (c *MemoryCache) read(key string, dst any, remove bool) (bool, error) {
	e, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.data, key)
		return false, nil
	}
	if remove {
		delete(c.data, key)
	}
	if err := json.Unmarshal(e.val, dst); err != nil {
		delete(c.data, key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	e := entry{val: b}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
