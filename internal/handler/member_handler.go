// Package handler 提供 HTTP 请求处理器
// 本文件处理社区成员相关的 API 请求
package handler

import (
	"forum_server/internal/dto/request"
	"forum_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberHandler 社区成员请求处理器
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler 创建成员处理器实例
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Join 申请加入社区
// POST /member/join
// 响应: respond.JoinRespond（ACTIVE 或 PENDING）
func (h *MemberHandler) Join(c *gin.Context) {
	var req request.JoinCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.memberSvc.JoinCommunity(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Approve 批量通过入群申请
// POST /member/approve
// 响应: respond.ReviewRespond
func (h *MemberHandler) Approve(c *gin.Context) {
	var req request.ReviewMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.memberSvc.ApproveMembers(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Reject 批量拒绝入群申请
// POST /member/reject
func (h *MemberHandler) Reject(c *gin.Context) {
	var req request.ReviewMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.memberSvc.RejectApplications(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Kick 踢出或封禁成员
// POST /member/kick
func (h *MemberHandler) Kick(c *gin.Context) {
	var req request.KickMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.memberSvc.KickMember(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Unban 解封成员
// POST /member/unban
func (h *MemberHandler) Unban(c *gin.Context) {
	var req request.UnbanMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.memberSvc.UnbanMember(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Leave 退出社区
// POST /member/leave
func (h *MemberHandler) Leave(c *gin.Context) {
	var req request.LeaveCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.memberSvc.LeaveCommunity(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// List 成员列表
// GET /member/list?community_id=xxx&status=PENDING
func (h *MemberHandler) List(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.memberSvc.GetMemberList(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
