// Package common 提供各业务 Service 共用的前置校验与收尾操作
package common

import (
	"context"
	"strings"
	"time"

	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"

	"go.uber.org/zap"
)

// LoadActor 读取发起操作的用户
// 用户不存在视为未登录；被禁用或被封禁的账号不能发起任何写操作
func LoadActor(users repository.UserRepository, userId string) (*model.UserInfo, error) {
	user, err := users.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在，请重新登录")
		}
		return nil, err
	}
	if !user.CanAct() {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用或封禁")
	}
	return user, nil
}

// ActiveMember 读取用户在社区中的正式成员身份
// 非成员、待审核或被封禁都视为无权限
func ActiveMember(members repository.CommunityMemberRepository, communityId, userId string) (*model.CommunityMember, error) {
	member, err := members.Find(communityId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeForbidden, "你不是该社区的成员")
		}
		return nil, err
	}
	if member.Status != permission.StatusActive {
		return nil, errorx.New(errorx.CodeForbidden, "你不是该社区的正式成员")
	}
	return member, nil
}

// Publish 事务提交后发布通知；发布失败只记录日志，不影响业务结果
func Publish(ctx context.Context, pub notify.Publisher, intents ...notify.Intent) {
	if pub == nil || len(intents) == 0 {
		return
	}
	if err := pub.Publish(ctx, intents...); err != nil {
		zap.L().Error("publish notification failed", zap.Error(err), zap.Int("count", len(intents)))
	}
}

// InvalidateCommunity 异步删除社区详情缓存
// 先递增版本号再删除，失效前读到旧数据的回填请求会因版本不一致被丢弃
func InvalidateCommunity(cache myredis.AsyncCacheService, communityId string) {
	if cache == nil {
		return
	}
	cache.SubmitTask(func() {
		ctx := context.Background()
		genTTL := 2 * time.Duration(constants.COMMUNITY_CACHE_TTL) * time.Minute
		if _, err := cache.IncrWithTTL(ctx, myredis.CommunityInfoGenKey(communityId), genTTL); err != nil {
			zap.L().Warn("bump community cache generation failed", zap.Error(err), zap.String("community_id", communityId))
		}
		if err := cache.Delete(ctx, myredis.CommunityInfoKey(communityId)); err != nil {
			zap.L().Warn("invalidate community cache failed", zap.Error(err), zap.String("community_id", communityId))
		}
	})
}

// Page 规范化分页参数
func Page(req request.PageRequest) (page, pageSize int) {
	page, pageSize = req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constants.DEFAULT_PAGE_SIZE
	}
	if pageSize > constants.MAX_PAGE_SIZE {
		pageSize = constants.MAX_PAGE_SIZE
	}
	return
}

// Dedupe 去重并保持原顺序
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RequireText 去掉首尾空白后不能为空
// 参数校验只保证长度，纯空白的标题或内容在这里拒绝
func RequireText(field, value string) (string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", errorx.Newf(errorx.CodeInvalidParam, "%s不能为空", field)
	}
	return text, nil
}
