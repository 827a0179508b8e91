// Package handler 提供 HTTP 请求处理器
// 本文件处理主站分区、帖子审核与评论相关的 API 请求
package handler

import (
	"forum_server/internal/dto/request"
	"forum_server/internal/service"
	"forum_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// PostHandler 主站帖子请求处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建帖子处理器实例
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// CreateCategory 创建主站分区（ADMIN）
// POST /post/category/create
func (h *PostHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.CreateCategory(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListCategories 主站分区列表
// GET /post/category/list
func (h *PostHandler) ListCategories(c *gin.Context) {
	data, err := h.postSvc.ListCategories(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreatePost 创建草稿
// POST /post/create
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.CreatePost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPost 帖子详情
// GET /post/info?post_id=xxx
func (h *PostHandler) GetPost(c *gin.Context) {
	postId := c.Query("post_id")
	if postId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "post_id 不能为空"))
		return
	}
	data, err := h.postSvc.GetPost(c.Request.Context(), currentUserID(c), postId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SubmitPost 提交草稿
// POST /post/submit
// 分区需要审核时进入 PENDING，否则直接发布
func (h *PostHandler) SubmitPost(c *gin.Context) {
	var req request.PostIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.SubmitPost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdatePost 编辑帖子
// POST /post/update
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req request.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.UpdatePost(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeletePost 删除帖子
// POST /post/delete
func (h *PostHandler) DeletePost(c *gin.Context) {
	var req request.PostIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.DeletePost(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ApprovePost 审核通过
// POST /post/approve
func (h *PostHandler) ApprovePost(c *gin.Context) {
	var req request.PostIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.ApprovePost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RejectPost 审核拒绝，原因不能为空
// POST /post/reject
func (h *PostHandler) RejectPost(c *gin.Context) {
	var req request.RejectPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.RejectPost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListPending 待审核队列
// GET /post/pendingList?page=1&page_size=20
func (h *PostHandler) ListPending(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.ListPending(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateComment 发表评论
// POST /post/comment/create
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req request.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.CreateComment(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateComment 编辑评论
// POST /post/comment/update
func (h *PostHandler) UpdateComment(c *gin.Context) {
	var req request.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.UpdateComment(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteComment 删除评论
// POST /post/comment/delete
func (h *PostHandler) DeleteComment(c *gin.Context) {
	var req request.DeleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.DeleteComment(c.Request.Context(), currentUserID(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
