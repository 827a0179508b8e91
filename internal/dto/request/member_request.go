package request

// JoinCommunityRequest 申请加入社区
type JoinCommunityRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
}

// ReviewMembersRequest 批量审核入群申请（通过或拒绝）
type ReviewMembersRequest struct {
	CommunityId string   `json:"community_id" binding:"required"`
	UserIds     []string `json:"user_ids" binding:"required,min=1,max=100,dive,required"`
}

// KickMemberRequest 踢出或封禁成员
type KickMemberRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
	UserId      string `json:"user_id" binding:"required"`
	Ban         bool   `json:"ban"`
	Reason      string `json:"reason" binding:"max=200"`
}

// UnbanMemberRequest 解封成员
type UnbanMemberRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
	UserId      string `json:"user_id" binding:"required"`
}

// LeaveCommunityRequest 退出社区
type LeaveCommunityRequest struct {
	CommunityId string `json:"community_id" binding:"required"`
}

// MemberListRequest 按状态查询成员列表，状态为空时查询正式成员
type MemberListRequest struct {
	CommunityId string `form:"community_id" binding:"required"`
	Status      string `form:"status" binding:"omitempty,oneof=PENDING ACTIVE BANNED"`
}
