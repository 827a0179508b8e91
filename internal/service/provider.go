// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"forum_server/internal/config"
	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/notify"
	"forum_server/internal/service/auth"
	"forum_server/internal/service/community"
	"forum_server/internal/service/member"
	"forum_server/internal/service/notification"
	"forum_server/internal/service/post"
	"forum_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过它访问各个 Service
type Services struct {
	Auth         AuthService
	User         UserService
	Community    CommunityService
	Member       MemberService
	Post         PostService
	Notification NotificationService
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// cache: 带异步任务的缓存服务
// pub: 通知发布者（消息队列）
// conf: 社区管理配置
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, pub notify.Publisher, conf config.ModerationConfig) *Services {
	return &Services{
		Auth:         auth.NewAuthService(repos, cache),
		User:         user.NewUserService(repos, cache, pub),
		Community:    community.NewCommunityService(repos, cache, pub),
		Member:       member.NewMemberService(repos, cache, pub, conf),
		Post:         post.NewPostService(repos, pub),
		Notification: notification.NewNotificationService(repos, cache),
	}
}
