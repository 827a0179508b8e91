// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
)

// AuthService 认证业务接口
// 处理注册、登录、Token 刷新与退出
type AuthService interface {
	// Register 邮箱注册
	Register(ctx context.Context, req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 邮箱密码登录，返回双 Token
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新双 Token，旧 Refresh Token 失效
	RefreshToken(ctx context.Context, req request.RefreshTokenRequest) (*respond.TokenRespond, error)
	// Logout 退出登录
	Logout(ctx context.Context, userId string) error
}

// UserService 用户业务接口
// 处理用户信息与全站账号管理
type UserService interface {
	// GetUserInfo 获取单个用户信息
	GetUserInfo(ctx context.Context, userId string) (*respond.UserInfoRespond, error)
	// ChangeGlobalRole 修改全站角色（ADMIN）
	ChangeGlobalRole(ctx context.Context, callerId string, req request.ChangeGlobalRoleRequest) error
	// BanUser 封禁用户（ADMIN）
	BanUser(ctx context.Context, callerId string, req request.BanUserRequest) error
	// UnbanUser 解封用户（ADMIN）
	UnbanUser(ctx context.Context, callerId string, req request.UnbanUserRequest) error
	// SetActive 启用或禁用账号（ADMIN）
	SetActive(ctx context.Context, callerId string, req request.SetActiveRequest) error
}

// CommunityService 社区业务接口
type CommunityService interface {
	// CreateCommunity 创建社区，创建者成为群主
	CreateCommunity(ctx context.Context, callerId string, req request.CreateCommunityRequest) (*respond.CommunityInfoRespond, error)
	// GetCommunityInfo 获取社区详情
	GetCommunityInfo(ctx context.Context, communityId string) (*respond.CommunityInfoRespond, error)
	// TransferOwnership 转让群主
	TransferOwnership(ctx context.Context, callerId string, req request.TransferOwnershipRequest) error
	// ChangeMemberRole 调整成员的社区角色
	ChangeMemberRole(ctx context.Context, callerId string, req request.ChangeMemberRoleRequest) error
	// CreateCategory 创建社区分区
	CreateCategory(ctx context.Context, callerId string, req request.CreateCommunityCategoryRequest) (*respond.CategoryRespond, error)
	// DeleteCategory 删除社区分区
	DeleteCategory(ctx context.Context, callerId string, req request.DeleteCommunityCategoryRequest) error
	// CreatePost 发布社区帖子或公告
	CreatePost(ctx context.Context, callerId string, req request.CreateCommunityPostRequest) (*respond.CommunityPostRespond, error)
	// UpdatePost 编辑社区帖子
	UpdatePost(ctx context.Context, callerId string, req request.UpdateCommunityPostRequest) error
	// DeletePost 删除社区帖子
	DeletePost(ctx context.Context, callerId string, req request.DeleteCommunityPostRequest) error
}

// MemberService 社区成员业务接口
type MemberService interface {
	// JoinCommunity 申请加入社区
	JoinCommunity(ctx context.Context, userId string, req request.JoinCommunityRequest) (*respond.JoinRespond, error)
	// ApproveMembers 批量通过入群申请
	ApproveMembers(ctx context.Context, callerId string, req request.ReviewMembersRequest) (*respond.ReviewRespond, error)
	// RejectApplications 批量拒绝入群申请
	RejectApplications(ctx context.Context, callerId string, req request.ReviewMembersRequest) (*respond.ReviewRespond, error)
	// KickMember 踢出或封禁成员
	KickMember(ctx context.Context, callerId string, req request.KickMemberRequest) error
	// UnbanMember 解封成员
	UnbanMember(ctx context.Context, callerId string, req request.UnbanMemberRequest) error
	// LeaveCommunity 退出社区
	LeaveCommunity(ctx context.Context, userId string, req request.LeaveCommunityRequest) error
	// GetMemberList 按状态查询成员列表
	GetMemberList(ctx context.Context, callerId string, req request.MemberListRequest) ([]respond.MemberRespond, error)
}

// PostService 主站帖子业务接口
// 处理分区、帖子、审核与评论
type PostService interface {
	CreateCategory(ctx context.Context, callerId string, req request.CreateCategoryRequest) (*respond.CategoryRespond, error)
	ListCategories(ctx context.Context) ([]respond.CategoryRespond, error)
	CreatePost(ctx context.Context, callerId string, req request.CreatePostRequest) (*respond.PostRespond, error)
	GetPost(ctx context.Context, callerId, postId string) (*respond.PostRespond, error)
	SubmitPost(ctx context.Context, callerId string, req request.PostIdRequest) (*respond.PostRespond, error)
	UpdatePost(ctx context.Context, callerId string, req request.UpdatePostRequest) error
	DeletePost(ctx context.Context, callerId string, req request.PostIdRequest) error
	ApprovePost(ctx context.Context, callerId string, req request.PostIdRequest) (*respond.PostRespond, error)
	RejectPost(ctx context.Context, callerId string, req request.RejectPostRequest) (*respond.PostRespond, error)
	ListPending(ctx context.Context, callerId string, req request.PageRequest) (*respond.PostListRespond, error)
	CreateComment(ctx context.Context, callerId string, req request.CreateCommentRequest) (*respond.CommentRespond, error)
	UpdateComment(ctx context.Context, callerId string, req request.UpdateCommentRequest) error
	DeleteComment(ctx context.Context, callerId string, req request.DeleteCommentRequest) error
}

// NotificationService 站内通知业务接口
type NotificationService interface {
	List(ctx context.Context, userId string, req request.PageRequest) (*respond.NotificationListRespond, error)
	UnreadCount(ctx context.Context, userId string) (*respond.UnreadCountRespond, error)
	MarkRead(ctx context.Context, userId string, req request.MarkReadRequest) (*respond.MarkReadRespond, error)
}
