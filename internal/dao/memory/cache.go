package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	myredis "forum_server/internal/dao/redis"
	"forum_server/pkg/errorx"
)

type cacheEntry struct {
	value    string
	expireAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// Cache AsyncCacheService 的内存实现，异步任务同步执行
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache 创建内存缓存
func NewCache() *Cache {
	return &Cache{entries: map[string]cacheEntry{}, now: time.Now}
}

// lookup 读取未过期的条目，调用方需持有 mu
func (c *Cache) lookup(key string) (cacheEntry, bool) {
	e, ok := c.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expireAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.lookup(key)
	return e.value, nil
}

func (c *Cache) SetIfUnchanged(_ context.Context, key, value string, ttl time.Duration, guardKey, expected string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if guard, _ := c.lookup(guardKey); guard.value != expected {
		return false, nil
	}
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expireAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return true, nil
}

func (c *Cache) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	if !ok && ttl > 0 {
		e.expireAt = c.now().Add(ttl)
	}
	return c.add(key, e, 1)
}

func (c *Cache) IncrByIfExists(_ context.Context, key string, delta int64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	if !ok {
		return 0, false, nil
	}
	n, err := c.add(key, e, delta)
	return n, err == nil, err
}

func (c *Cache) add(key string, e cacheEntry, delta int64) (int64, error) {
	var n int64
	if e.value != "" {
		var err error
		if n, err = strconv.ParseInt(e.value, 10, 64); err != nil {
			return 0, errorx.Wrapf(err, errorx.CodeCacheError, "cache incr key %s", key)
		}
	}
	n += delta
	e.value = strconv.FormatInt(n, 10)
	c.entries[key] = e
	return n, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) SubmitTask(action func()) {
	action()
}

// Advance 将内部时钟前移，用于测试过期逻辑
func (c *Cache) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	base := c.now()
	c.now = func() time.Time { return base.Add(d) }
}

var _ myredis.AsyncCacheService = (*Cache)(nil)
