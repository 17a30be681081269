package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// MultiLevelCache 本地 LRU + 远程 Redis 两级缓存
// 本地层 TTL 较短，多实例部署时其他实例的失效最多延迟 localTTL 生效
type MultiLevelCache struct {
	local    CacheService
	remote   CacheService
	localTTL time.Duration
}

// NewMultiLevelCache 创建两级缓存
func NewMultiLevelCache(local, remote CacheService, localTTL time.Duration) *MultiLevelCache {
	return &MultiLevelCache{local: local, remote: remote, localTTL: localTTL}
}

func (c *MultiLevelCache) localExpiration(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < c.localTTL {
		return expiration
	}
	return c.localTTL
}

// Get 先查本地，未命中再查远程并回填本地
func (c *MultiLevelCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := c.local.Get(ctx, key, dest); err == nil {
		return nil
	}

	var raw json.RawMessage
	if err := c.remote.Get(ctx, key, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	// 回填失败不影响读取
	_ = c.local.Set(ctx, key, raw, c.localTTL)
	return nil
}

// Set 同时写入两级
func (c *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := c.remote.Set(ctx, key, value, expiration); err != nil {
		return fmt.Errorf("failed to set remote cache: %w", err)
	}
	if err := c.local.Set(ctx, key, value, c.localExpiration(expiration)); err != nil {
		return fmt.Errorf("failed to set local cache: %w", err)
	}
	return nil
}

// Delete 两级都删除，本地总是先删
func (c *MultiLevelCache) Delete(ctx context.Context, key string) error {
	localErr := c.local.Delete(ctx, key)
	if err := c.remote.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete remote cache: %w", err)
	}
	return localErr
}

func (c *MultiLevelCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, err := c.local.Exists(ctx, key); err == nil && ok {
		return true, nil
	}
	return c.remote.Exists(ctx, key)
}
