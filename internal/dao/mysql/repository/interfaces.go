// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，gorm 实现在各自的文件中
package repository

import (
	"time"

	"forum_server/internal/model"
	"forum_server/internal/permission"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// UpdateGlobalRole 修改全站角色
	UpdateGlobalRole(uuid string, role permission.GlobalRole) error
	// UpdateBan 写入封禁状态；banned=false 时清空封禁信息
	UpdateBan(uuid string, banned bool, bannedAt *time.Time, reason string) error
	// UpdateActive 修改启用状态
	UpdateActive(uuid string, active bool) error
}

// CommunityRepository 社区数据访问接口
type CommunityRepository interface {
	// FindByUuid 根据 UUID 查找社区
	FindByUuid(uuid string) (*model.Community, error)
	// FindByUuidForUpdate 事务内加行锁读取社区
	FindByUuidForUpdate(uuid string) (*model.Community, error)
	// ExistsBySlug 短链是否已被占用
	ExistsBySlug(slug string) (bool, error)
	// Create 创建社区
	Create(community *model.Community) error
	// UpdateOwner 修改群主，要求当前群主为 fromOwnerId
	UpdateOwner(uuid, fromOwnerId, toOwnerId string) error
	// AddMemberCount 调整正式成员数，delta 可为负
	AddMemberCount(uuid string, delta int) error
}

// MemberUpdate 成员状态写入内容
type MemberUpdate struct {
	Status    permission.MembershipStatus
	BannedAt  *time.Time
	BannedBy  string
	BanReason string
}

// CommunityMemberRepository 社区成员数据访问接口
type CommunityMemberRepository interface {
	// Find 查找成员关系，不存在返回 CodeNotFound
	Find(communityUuid, userUuid string) (*model.CommunityMember, error)
	// FindForUpdate 事务内加行锁读取成员关系
	FindForUpdate(communityUuid, userUuid string) (*model.CommunityMember, error)
	// FindByUserUuids 批量查找成员关系，不存在的用户不返回
	FindByUserUuids(communityUuid string, userUuids []string) ([]model.CommunityMember, error)
	// ListByStatus 按状态列出社区成员
	ListByStatus(communityUuid string, status permission.MembershipStatus) ([]model.CommunityMember, error)
	// Create 新增成员关系
	Create(member *model.CommunityMember) error
	// UpdateRole 修改角色，要求当前角色为 from，否则返回 CodeConflict
	UpdateRole(communityUuid, userUuid string, from, to permission.CommunityRole) error
	// UpdateStatus 修改状态及封禁信息，要求当前状态为 from，否则返回 CodeConflict
	UpdateStatus(communityUuid, userUuid string, from permission.MembershipStatus, update MemberUpdate) error
	// Delete 物理删除成员关系，要求当前状态为 from，否则返回 CodeConflict
	Delete(communityUuid, userUuid string, from permission.MembershipStatus) error
}

// CategoryRepository 分区数据访问接口
type CategoryRepository interface {
	FindByUuid(uuid string) (*model.Category, error)
	// ListByCommunity 列出社区分区，communityUuid 为空时列出主站分区
	ListByCommunity(communityUuid string) ([]model.Category, error)
	Create(category *model.Category) error
	Delete(uuid string) error
}

// PostStatusUpdate 帖子审核状态写入内容
// 由 permission.Outcome 转换而来，除 SubmittedAt 外所有字段都会写入（包括清空）
// SubmittedAt 为 nil 时保持原值
type PostStatusUpdate struct {
	Status         permission.PostStatus
	SubmittedAt    *time.Time
	ApprovedAt     *time.Time
	ApprovedById   string
	RejectedReason string
}

// PostRepository 主站帖子数据访问接口
type PostRepository interface {
	FindByUuid(uuid string) (*model.Post, error)
	// FindByUuidForUpdate 事务内加行锁读取帖子
	FindByUuidForUpdate(uuid string) (*model.Post, error)
	Create(post *model.Post) error
	UpdateContent(uuid, title, content string) error
	Delete(uuid string) error
	// UpdateStatus 写入审核结果，要求当前状态为 from，否则返回 CodeConflict
	UpdateStatus(uuid string, from permission.PostStatus, update PostStatusUpdate) error
	// ListByStatus 分页列出指定状态的帖子，按创建时间升序
	ListByStatus(status permission.PostStatus, page, pageSize int) ([]model.Post, int64, error)
}

// TagRepository 标签数据访问接口
type TagRepository interface {
	// FindOrCreateByNames 按名称查找标签，不存在则创建
	FindOrCreateByNames(names []string) ([]model.Tag, error)
	// FindByPost 查询帖子关联的标签
	FindByPost(postUuid string) ([]model.Tag, error)
	// AttachToPost 建立帖子与标签的关联
	AttachToPost(postUuid string, tagUuids []string) error
	// IncrementPostCount 批量为标签的已发布帖子数 +1
	IncrementPostCount(tagUuids []string) error
}

// CommentRepository 主站评论数据访问接口
type CommentRepository interface {
	FindByUuid(uuid string) (*model.Comment, error)
	Create(comment *model.Comment) error
	UpdateContent(uuid, content string) error
	Delete(uuid string) error
}

// CommunityPostRepository 社区帖子数据访问接口
type CommunityPostRepository interface {
	FindByUuid(uuid string) (*model.CommunityPost, error)
	Create(post *model.CommunityPost) error
	UpdateContent(uuid, title, content string) error
	Delete(uuid string) error
}

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(notification *model.Notification) error
	// ListByUser 分页查询用户通知，按创建时间倒序
	ListByUser(userId string, page, pageSize int) ([]model.Notification, int64, error)
	// MarkRead 标记已读，返回实际更新条数
	MarkRead(userId string, uuids []string) (int64, error)
	// CountUnread 统计未读数
	CountUnread(userId string) (int64, error)
}

// ==================== Repository 聚合 ====================

// TxFunc 事务执行器：在同一事务内以新的 Repositories 调用 fn
type TxFunc func(fn func(txRepos *Repositories) error) error

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	User          UserRepository
	Community     CommunityRepository
	Member        CommunityMemberRepository
	Category      CategoryRepository
	Post          PostRepository
	Tag           TagRepository
	Comment       CommentRepository
	CommunityPost CommunityPostRepository
	Notification  NotificationRepository

	tx TxFunc
}

// NewRepositories 创建所有 gorm Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	repos := &Repositories{
		User:          NewUserRepository(db),
		Community:     NewCommunityRepository(db),
		Member:        NewCommunityMemberRepository(db),
		Category:      NewCategoryRepository(db),
		Post:          NewPostRepository(db),
		Tag:           NewTagRepository(db),
		Comment:       NewCommentRepository(db),
		CommunityPost: NewCommunityPostRepository(db),
		Notification:  NewNotificationRepository(db),
	}
	repos.tx = func(fn func(txRepos *Repositories) error) error {
		return db.Transaction(func(tx *gorm.DB) error {
			// 使用事务 db 创建新的 Repositories 实例
			return fn(NewRepositories(tx))
		})
	}
	return repos
}

// WithTx 设置事务执行器，非 gorm 实现（如内存实现）通过它接入
func (r *Repositories) WithTx(tx TxFunc) *Repositories {
	r.tx = tx
	return r
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.tx == nil {
		return fn(r)
	}
	return r.tx(fn)
}
