package request

// CreateCommunityRequest 创建社区
type CreateCommunityRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=50"`
	Description      string `json:"description" binding:"max=500"`
	RequiresApproval bool   `json:"requires_approval"`
}

// CommunityInfoRequest 查询社区详情
type CommunityInfoRequest struct {
	CommunityId string `form:"community_id" binding:"required"`
}

// TransferOwnershipRequest 转让群主
type TransferOwnershipRequest struct {
	CommunityId  string `json:"community_id" binding:"required"`
	TargetUserId string `json:"target_user_id" binding:"required"`
}

// ChangeMemberRoleRequest 修改成员社区角色
type ChangeMemberRoleRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
	UserId      string `json:"user_id" binding:"required"`
	Role        string `json:"role" binding:"required,community_role"`
}

// CreateCommunityCategoryRequest 创建社区分区
type CreateCommunityCategoryRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
	Name        string `json:"name" binding:"required,min=1,max=30"`
}

// DeleteCommunityCategoryRequest 删除社区分区
type DeleteCommunityCategoryRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
	CategoryId  string `json:"category_id" binding:"required"`
}

// CreateCommunityPostRequest 发布社区帖子或公告
type CreateCommunityPostRequest struct {
	CommunityId    string `json:"community_id" binding:"required"`
	CategoryId     string `json:"category_id"`
	Title          string `json:"title" binding:"required,min=1,max=100"`
	Content        string `json:"content" binding:"max=20000"`
	IsAnnouncement bool   `json:"is_announcement"`
}

// UpdateCommunityPostRequest 编辑社区帖子
type UpdateCommunityPostRequest struct {
	PostId  string `json:"post_id" binding:"required"`
	Title   string `json:"title" binding:"required,min=1,max=100"`
	Content string `json:"content" binding:"max=20000"`
}

// DeleteCommunityPostRequest 删除社区帖子
type DeleteCommunityPostRequest struct {
	PostId string `json:"post_id" binding:"required"`
}
