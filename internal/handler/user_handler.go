// Package handler 提供 HTTP 请求处理器
// 本文件处理用户信息与全站管理相关的 API 请求
package handler

import (
	"forum_server/internal/dto/request"
	"forum_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetUserInfo 获取用户信息
// GET /user/info?user_id=xxx，不带 user_id 时返回当前登录用户
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userId := c.Query("user_id")
	if userId == "" {
		userId = currentUserID(c)
	}
	data, err := h.userSvc.GetUserInfo(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ChangeGlobalRole 修改全站角色
// POST /user/admin/changeRole
// 请求体: request.ChangeGlobalRoleRequest
func (h *UserHandler) ChangeGlobalRole(c *gin.Context) {
	var req request.ChangeGlobalRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.ChangeGlobalRole(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// BanUser 封禁用户
// POST /user/admin/ban
// 请求体: request.BanUserRequest
func (h *UserHandler) BanUser(c *gin.Context) {
	var req request.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.BanUser(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UnbanUser 解封用户
// POST /user/admin/unban
// 请求体: request.UnbanUserRequest
func (h *UserHandler) UnbanUser(c *gin.Context) {
	var req request.UnbanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.UnbanUser(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SetActive 启用或禁用账号
// POST /user/admin/setActive
// 请求体: request.SetActiveRequest
func (h *UserHandler) SetActive(c *gin.Context) {
	var req request.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.SetActive(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
