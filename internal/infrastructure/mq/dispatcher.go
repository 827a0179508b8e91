package mq

import (
	"context"
	"encoding/json"

	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/model"
	"forum_server/internal/notify"

	"go.uber.org/zap"
)

// Dispatcher 将通知落库为站内信，并维护 Redis 中的未读数
type Dispatcher struct {
	repo  repository.NotificationRepository
	cache myredis.CacheService
}

// NewDispatcher 创建通知分发器
func NewDispatcher(repo repository.NotificationRepository, cache myredis.CacheService) *Dispatcher {
	return &Dispatcher{repo: repo, cache: cache}
}

// Handle 处理一条通知；同一 ID 重复投递只落库一次
// 未读数只在缓存存在时累加，缓存缺失时由查询接口从数据库重建
func (d *Dispatcher) Handle(ctx context.Context, intent notify.Intent) error {
	payload, err := json.Marshal(intent.Payload)
	if err != nil {
		return err
	}
	n := &model.Notification{
		Uuid:    intent.ID,
		UserId:  intent.UserID,
		Type:    string(intent.Type),
		Payload: string(payload),
	}
	if err := d.repo.Create(n); err != nil {
		return err
	}
	// 重复投递时 Create 不会写入，ID 仍为零
	if n.ID == 0 {
		return nil
	}
	if _, _, err := d.cache.IncrByIfExists(ctx, myredis.UnreadCountKey(intent.UserID), 1); err != nil {
		zap.L().Warn("bump unread counter failed", zap.Error(err), zap.String("user_id", intent.UserID))
	}
	return nil
}
