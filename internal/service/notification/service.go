// Package notification 提供站内通知查询与已读管理
package notification

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/service/common"
	"forum_server/pkg/constants"
)

// notificationService 站内通知业务逻辑实现
type notificationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewNotificationService 构造函数
func NewNotificationService(repos *repository.Repositories, cache myredis.AsyncCacheService) *notificationService {
	return &notificationService{repos: repos, cache: cache}
}

// List 分页查询当前用户的通知，最新的在前
func (s *notificationService) List(ctx context.Context, userId string, req request.PageRequest) (*respond.NotificationListRespond, error) {
	page, pageSize := common.Page(req)
	list, total, err := s.repos.Notification.ListByUser(userId, page, pageSize)
	if err != nil {
		return nil, err
	}
	rsp := &respond.NotificationListRespond{Total: total, List: make([]respond.NotificationRespond, 0, len(list))}
	for _, n := range list {
		payload := map[string]string{}
		if n.Payload != "" {
			if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
				zap.L().Warn("notification payload is not valid json", zap.String("uuid", n.Uuid), zap.Error(err))
			}
		}
		rsp.List = append(rsp.List, respond.NotificationRespond{
			Uuid:      n.Uuid,
			Type:      n.Type,
			Payload:   payload,
			IsRead:    n.IsRead,
			CreatedAt: respond.FormatTime(&n.CreatedAt),
		})
	}
	return rsp, nil
}

// UnreadCount 查询未读数
// 优先读缓存；缓存缺失或损坏时从数据库统计并异步回填
func (s *notificationService) UnreadCount(ctx context.Context, userId string) (*respond.UnreadCountRespond, error) {
	key := myredis.UnreadCountKey(userId)
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("read unread counter failed", zap.Error(err), zap.String("user_id", userId))
	}
	if cached != "" {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil && n >= 0 {
			return &respond.UnreadCountRespond{Count: n}, nil
		}
	}

	count, err := s.repos.Notification.CountUnread(userId)
	if err != nil {
		return nil, err
	}
	s.cache.SubmitTask(func() {
		ttl := time.Duration(constants.UNREAD_CACHE_TTL) * time.Minute
		if err := s.cache.Set(context.Background(), key, strconv.FormatInt(count, 10), ttl); err != nil {
			zap.L().Warn("write unread counter failed", zap.Error(err), zap.String("user_id", userId))
		}
	})
	return &respond.UnreadCountRespond{Count: count}, nil
}

// MarkRead 标记通知已读，只处理属于当前用户且未读的通知
func (s *notificationService) MarkRead(ctx context.Context, userId string, req request.MarkReadRequest) (*respond.MarkReadRespond, error) {
	updated, err := s.repos.Notification.MarkRead(userId, common.Dedupe(req.Ids))
	if err != nil {
		return nil, err
	}
	if updated > 0 {
		n, ok, err := s.cache.IncrByIfExists(ctx, myredis.UnreadCountKey(userId), -updated)
		if err != nil || (ok && n < 0) {
			// 计数已不可信，删除后由下次查询重建
			_ = s.cache.Delete(ctx, myredis.UnreadCountKey(userId))
		}
	}
	return &respond.MarkReadRespond{Updated: updated}, nil
}
