// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册公开的认证路由
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		// 使用 Refresh Token 换取新的双 Token
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
	}
}

// RegisterLogoutRoutes 退出登录需要 Access Token
func (rt *Router) RegisterLogoutRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", rt.handlers.Auth.Logout)
}
