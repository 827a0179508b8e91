// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"forum_server/internal/handler"
	"forum_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有所有 Handler
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r) // 认证路由（注册、登录、刷新无需登录）

	authed := r.Group("")
	authed.Use(middleware.JWTAuth())
	{
		rt.RegisterLogoutRoutes(authed)
		rt.RegisterUserRoutes(authed)
		rt.RegisterCommunityRoutes(authed)
		rt.RegisterMemberRoutes(authed)
		rt.RegisterPostRoutes(authed)
		rt.RegisterNotificationRoutes(authed)
	}
}
