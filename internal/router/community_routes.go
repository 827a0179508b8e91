// Package router 提供 HTTP 路由注册
// 本文件定义社区与社区成员相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterCommunityRoutes 注册社区相关路由（需要认证）
func (rt *Router) RegisterCommunityRoutes(rg *gin.RouterGroup) {
	communityGroup := rg.Group("/community")
	{
		// ===== 社区基本操作 =====
		communityGroup.POST("/create", rt.handlers.Community.CreateCommunity)
		communityGroup.GET("/info", rt.handlers.Community.GetCommunityInfo)
		communityGroup.POST("/transferOwnership", rt.handlers.Community.TransferOwnership) // 转让群主
		communityGroup.POST("/changeMemberRole", rt.handlers.Community.ChangeMemberRole)

		// ===== 分区 =====
		communityGroup.POST("/category/create", rt.handlers.Community.CreateCategory)
		communityGroup.POST("/category/delete", rt.handlers.Community.DeleteCategory)

		// ===== 帖子与公告 =====
		communityGroup.POST("/post/create", rt.handlers.Community.CreatePost)
		communityGroup.POST("/post/update", rt.handlers.Community.UpdatePost)
		communityGroup.POST("/post/delete", rt.handlers.Community.DeletePost)
	}
}

// RegisterMemberRoutes 注册社区成员路由（需要认证）
func (rt *Router) RegisterMemberRoutes(rg *gin.RouterGroup) {
	memberGroup := rg.Group("/member")
	{
		memberGroup.POST("/join", rt.handlers.Member.Join)
		memberGroup.POST("/leave", rt.handlers.Member.Leave)
		memberGroup.GET("/list", rt.handlers.Member.List)

		// 审核与处罚
		memberGroup.POST("/approve", rt.handlers.Member.Approve)
		memberGroup.POST("/reject", rt.handlers.Member.Reject)
		memberGroup.POST("/kick", rt.handlers.Member.Kick)
		memberGroup.POST("/unban", rt.handlers.Member.Unban)
	}
}
