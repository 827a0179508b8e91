package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
// 管理接口的角色校验在 Service 层完成
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/info", rt.handlers.User.GetUserInfo)

		adminGroup := userGroup.Group("/admin")
		{
			adminGroup.POST("/changeRole", rt.handlers.User.ChangeGlobalRole) // 修改全站角色
			adminGroup.POST("/ban", rt.handlers.User.BanUser)
			adminGroup.POST("/unban", rt.handlers.User.UnbanUser)
			adminGroup.POST("/setActive", rt.handlers.User.SetActive) // 启用/禁用账号
		}
	}
}
