package request

// CreateCategoryRequest 创建主站分区（仅 ADMIN）
type CreateCategoryRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=30"`
	RequiresApproval bool   `json:"requires_approval"`
}

// CreatePostRequest 创建主站帖子草稿
type CreatePostRequest struct {
	CategoryId string   `json:"category_id" binding:"required"`
	Title      string   `json:"title" binding:"required,min=1,max=100"`
	Content    string   `json:"content" binding:"max=20000"`
	Tags       []string `json:"tags" binding:"max=5,dive,min=1,max=30"`
}

// PostIdRequest 只携带帖子 ID 的请求（提交、删除、通过审核）
type PostIdRequest struct {
	PostId string `json:"post_id" binding:"required"`
}

// UpdatePostRequest 编辑主站帖子
type UpdatePostRequest struct {
	PostId  string `json:"post_id" binding:"required"`
	Title   string `json:"title" binding:"required,min=1,max=100"`
	Content string `json:"content" binding:"max=20000"`
}

// RejectPostRequest 驳回帖子，原因由业务层校验非空
type RejectPostRequest struct {
	PostId string `json:"post_id" binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}

// PageRequest 分页参数
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateCommentRequest 发表评论
type CreateCommentRequest struct {
	PostId  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// UpdateCommentRequest 编辑评论
type UpdateCommentRequest struct {
	CommentId string `json:"comment_id" binding:"required"`
	Content   string `json:"content" binding:"required,min=1,max=2000"`
}

// DeleteCommentRequest 删除评论
type DeleteCommentRequest struct {
	CommentId string `json:"comment_id" binding:"required"`
}
