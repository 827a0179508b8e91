package respond

// PostRespond 主站帖子
type PostRespond struct {
	Uuid             string   `json:"uuid"`
	AuthorId         string   `json:"author_id"`
	AuthorGlobalRole string   `json:"author_global_role"`
	CategoryId       string   `json:"category_id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Status           string   `json:"status"`
	Tags             []string `json:"tags"`
	SubmittedAt      string   `json:"submitted_at,omitempty"`
	ApprovedAt       string   `json:"approved_at,omitempty"`
	ApprovedById     string   `json:"approved_by_id,omitempty"`
	RejectedReason   string   `json:"rejected_reason,omitempty"`
	CreatedAt        string   `json:"created_at"`
}

// PostListRespond 帖子分页列表
type PostListRespond struct {
	Total int64         `json:"total"`
	List  []PostRespond `json:"list"`
}

// CommentRespond 评论
type CommentRespond struct {
	Uuid      string `json:"uuid"`
	PostId    string `json:"post_id"`
	AuthorId  string `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
