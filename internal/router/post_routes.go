// Package router 提供 HTTP 路由注册
// 本文件定义主站帖子、评论与通知相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPostRoutes 注册帖子与评论路由（需要认证）
func (rt *Router) RegisterPostRoutes(rg *gin.RouterGroup) {
	postGroup := rg.Group("/post")
	{
		// ===== 分区 =====
		postGroup.POST("/category/create", rt.handlers.Post.CreateCategory)
		postGroup.GET("/category/list", rt.handlers.Post.ListCategories)

		// ===== 帖子 =====
		postGroup.POST("/create", rt.handlers.Post.CreatePost)
		postGroup.GET("/info", rt.handlers.Post.GetPost)
		postGroup.POST("/submit", rt.handlers.Post.SubmitPost)
		postGroup.POST("/update", rt.handlers.Post.UpdatePost)
		postGroup.POST("/delete", rt.handlers.Post.DeletePost)

		// ===== 审核 =====
		postGroup.POST("/approve", rt.handlers.Post.ApprovePost)
		postGroup.POST("/reject", rt.handlers.Post.RejectPost)
		postGroup.GET("/pendingList", rt.handlers.Post.ListPending)

		// ===== 评论 =====
		postGroup.POST("/comment/create", rt.handlers.Post.CreateComment)
		postGroup.POST("/comment/update", rt.handlers.Post.UpdateComment)
		postGroup.POST("/comment/delete", rt.handlers.Post.DeleteComment)
	}
}

// RegisterNotificationRoutes 注册站内通知路由（需要认证）
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notificationGroup := rg.Group("/notification")
	{
		notificationGroup.GET("/list", rt.handlers.Notification.List)
		notificationGroup.GET("/unreadCount", rt.handlers.Notification.UnreadCount)
		notificationGroup.POST("/markRead", rt.handlers.Notification.MarkRead)
	}
}
