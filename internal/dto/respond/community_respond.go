package respond

// CategoryRespond 分区
type CategoryRespond struct {
	Uuid             string `json:"uuid"`
	CommunityId      string `json:"community_id,omitempty"`
	Name             string `json:"name"`
	RequiresApproval bool   `json:"requires_approval"`
}

// CommunityInfoRespond 社区详情
type CommunityInfoRespond struct {
	Uuid             string            `json:"uuid"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Description      string            `json:"description"`
	OwnerId          string            `json:"owner_id"`
	MemberCnt        int               `json:"member_cnt"`
	RequiresApproval bool              `json:"requires_approval"`
	Categories       []CategoryRespond `json:"categories"`
	CreatedAt        string            `json:"created_at"`
}

// MemberRespond 社区成员
type MemberRespond struct {
	UserId    string `json:"user_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	BannedAt  string `json:"banned_at,omitempty"`
	BannedBy  string `json:"banned_by,omitempty"`
	BanReason string `json:"ban_reason,omitempty"`
	JoinedAt  string `json:"joined_at"`
}

// JoinRespond 申请加入结果
type JoinRespond struct {
	Status string `json:"status"`
}

// ReviewRespond 批量审核结果：实际被处理的用户
type ReviewRespond struct {
	UserIds []string `json:"user_ids"`
}

// CommunityPostRespond 社区帖子
type CommunityPostRespond struct {
	Uuid           string `json:"uuid"`
	CommunityId    string `json:"community_id"`
	CategoryId     string `json:"category_id,omitempty"`
	AuthorId       string `json:"author_id"`
	AuthorRole     string `json:"author_role"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	IsAnnouncement bool   `json:"is_announcement"`
	CreatedAt      string `json:"created_at"`
}
