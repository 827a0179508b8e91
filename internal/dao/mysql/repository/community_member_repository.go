package repository

import (
	"forum_server/internal/model"
	"forum_server/internal/permission"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// communityMemberRepository CommunityMemberRepository 接口的 gorm 实现
type communityMemberRepository struct {
	db *gorm.DB
}

// NewCommunityMemberRepository 创建 CommunityMemberRepository 实例
func NewCommunityMemberRepository(db *gorm.DB) CommunityMemberRepository {
	return &communityMemberRepository{db: db}
}

// Find 查找成员关系
func (r *communityMemberRepository) Find(communityUuid, userUuid string) (*model.CommunityMember, error) {
	var member model.CommunityMember
	if err := r.db.Where("community_uuid = ? AND user_uuid = ?", communityUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区成员 community=%s user=%s", communityUuid, userUuid)
	}
	return &member, nil
}

// FindForUpdate 事务内加行锁读取成员关系
func (r *communityMemberRepository) FindForUpdate(communityUuid, userUuid string) (*model.CommunityMember, error) {
	var member model.CommunityMember
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("community_uuid = ? AND user_uuid = ?", communityUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区成员 community=%s user=%s", communityUuid, userUuid)
	}
	return &member, nil
}

// FindByUserUuids 批量查找成员关系
func (r *communityMemberRepository) FindByUserUuids(communityUuid string, userUuids []string) ([]model.CommunityMember, error) {
	members := make([]model.CommunityMember, 0, len(userUuids))
	if len(userUuids) == 0 {
		return members, nil
	}
	if err := r.db.Where("community_uuid = ? AND user_uuid IN ?", communityUuid, userUuids).
		Order("id").Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "批量查询社区成员 community=%s", communityUuid)
	}
	return members, nil
}

// ListByStatus 按状态列出社区成员
func (r *communityMemberRepository) ListByStatus(communityUuid string, status permission.MembershipStatus) ([]model.CommunityMember, error) {
	var members []model.CommunityMember
	if err := r.db.Where("community_uuid = ? AND status = ?", communityUuid, status).
		Order("id").Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区成员列表 community=%s status=%s", communityUuid, status)
	}
	return members, nil
}

// Create 新增成员关系
func (r *communityMemberRepository) Create(member *model.CommunityMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建社区成员")
	}
	return nil
}

// UpdateRole 条件修改角色
func (r *communityMemberRepository) UpdateRole(communityUuid, userUuid string, from, to permission.CommunityRole) error {
	result := r.db.Model(&model.CommunityMember{}).
		Where("community_uuid = ? AND user_uuid = ? AND role = ?", communityUuid, userUuid, from).
		Update("role", to)
	return requireAffected(result, "成员 %s 的角色已变更", userUuid)
}

// UpdateStatus 条件修改状态，封禁信息整体覆盖
func (r *communityMemberRepository) UpdateStatus(communityUuid, userUuid string, from permission.MembershipStatus, update MemberUpdate) error {
	result := r.db.Model(&model.CommunityMember{}).
		Where("community_uuid = ? AND user_uuid = ? AND status = ?", communityUuid, userUuid, from).
		Updates(map[string]any{
			"status":     update.Status,
			"banned_at":  update.BannedAt,
			"banned_by":  update.BannedBy,
			"ban_reason": update.BanReason,
		})
	return requireAffected(result, "成员 %s 的状态已变更", userUuid)
}

// Delete 物理删除成员关系
// 使用 Unscoped 绕过软删除，避免唯一索引阻止用户再次加入
func (r *communityMemberRepository) Delete(communityUuid, userUuid string, from permission.MembershipStatus) error {
	result := r.db.Unscoped().
		Where("community_uuid = ? AND user_uuid = ? AND status = ?", communityUuid, userUuid, from).
		Delete(&model.CommunityMember{})
	return requireAffected(result, "成员 %s 的状态已变更", userUuid)
}
