// Package redis 定义缓存服务接口
// Service 层依赖此接口而非具体 Redis 实现
package redis

import (
	"context"
	"time"
)

// CacheService 缓存服务接口
type CacheService interface {
	// ==================== String 操作 ====================

	// Set 设置键值对并指定过期时间
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get 获取键对应的值（键不存在返回空字符串和 nil）
	Get(ctx context.Context, key string) (string, error)
	// SetIfUnchanged 仅当 guardKey 的值仍为 expected（不存在视为空串）时写入，返回是否写入
	SetIfUnchanged(ctx context.Context, key, value string, ttl time.Duration, guardKey, expected string) (bool, error)

	// ==================== 计数器 ====================

	// IncrWithTTL 计数器 +1，首次创建时设置过期时间，返回自增后的值
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// IncrByIfExists 键存在时增加 delta（可为负）；键不存在时不创建，ok 返回 false
	IncrByIfExists(ctx context.Context, key string, delta int64) (n int64, ok bool, err error)

	// ==================== Key 操作 ====================

	// Delete 删除键（如果存在）
	Delete(ctx context.Context, key string) error
}

// AsyncCacheService 异步缓存服务接口
// 提供异步任务提交能力，用于非阻塞缓存更新
type AsyncCacheService interface {
	CacheService
	// SubmitTask 提交异步缓存任务
	SubmitTask(action func())
}
