// Package handler 提供 HTTP 请求处理器
// 本文件处理社区、社区分区与社区帖子相关的 API 请求
package handler

import (
	"forum_server/internal/dto/request"
	"forum_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CommunityHandler 社区请求处理器
type CommunityHandler struct {
	communitySvc service.CommunityService
}

// NewCommunityHandler 创建社区处理器实例
func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

// CreateCommunity 创建社区
// POST /community/create
// 请求体: request.CreateCommunityRequest
// 响应: respond.CommunityInfoRespond
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var req request.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.communitySvc.CreateCommunity(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetCommunityInfo 获取社区详情
// GET /community/info?community_id=xxx
func (h *CommunityHandler) GetCommunityInfo(c *gin.Context) {
	var req request.CommunityInfoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.communitySvc.GetCommunityInfo(c.Request.Context(), req.CommunityId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// TransferOwnership 转让群主
// POST /community/transferOwnership
// 请求体: request.TransferOwnershipRequest
func (h *CommunityHandler) TransferOwnership(c *gin.Context) {
	var req request.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.communitySvc.TransferOwnership(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ChangeMemberRole 调整成员角色
// POST /community/changeMemberRole
// 请求体: request.ChangeMemberRoleRequest
func (h *CommunityHandler) ChangeMemberRole(c *gin.Context) {
	var req request.ChangeMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.communitySvc.ChangeMemberRole(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CreateCategory 创建社区分区
// POST /community/category/create
func (h *CommunityHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCommunityCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.communitySvc.CreateCategory(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteCategory 删除社区分区
// POST /community/category/delete
func (h *CommunityHandler) DeleteCategory(c *gin.Context) {
	var req request.DeleteCommunityCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.communitySvc.DeleteCategory(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CreatePost 发布社区帖子或公告
// POST /community/post/create
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req request.CreateCommunityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.communitySvc.CreatePost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdatePost 编辑社区帖子
// POST /community/post/update
func (h *CommunityHandler) UpdatePost(c *gin.Context) {
	var req request.UpdateCommunityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.communitySvc.UpdatePost(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeletePost 删除社区帖子
// POST /community/post/delete
func (h *CommunityHandler) DeletePost(c *gin.Context) {
	var req request.DeleteCommunityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.communitySvc.DeletePost(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
