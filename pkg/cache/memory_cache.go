package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache 进程内 LRU 缓存（单实例部署或测试使用）
// 值以 JSON 保存，读写语义与 RedisCache 一致
type MemoryCache struct {
	lru *lru.Cache[string, memoryItem]
	now func() time.Time
}

// NewMemoryCache 创建容量为 size 的内存缓存
func NewMemoryCache(size int) (*MemoryCache, error) {
	l, err := lru.New[string, memoryItem](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l, now: time.Now}, nil
}

func (c *MemoryCache) load(key string) (memoryItem, bool) {
	item, ok := c.lru.Get(key)
	if !ok {
		return memoryItem{}, false
	}
	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.lru.Remove(key)
		return memoryItem{}, false
	}
	return item, true
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	item, ok := c.load(key)
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set expiration 为 0 表示不过期
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	item := memoryItem{data: data}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.lru.Add(key, item)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.load(key)
	return ok, nil
}
