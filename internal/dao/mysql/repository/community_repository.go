package repository

import (
	"forum_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// communityRepository CommunityRepository 接口的 gorm 实现
type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository 创建 CommunityRepository 实例
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// FindByUuid 根据 UUID 查找社区
func (r *communityRepository) FindByUuid(uuid string) (*model.Community, error) {
	var community model.Community
	if err := r.db.Where("uuid = ?", uuid).First(&community).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区 uuid=%s", uuid)
	}
	return &community, nil
}

// FindByUuidForUpdate 事务内加行锁读取社区（SELECT ... FOR UPDATE）
func (r *communityRepository) FindByUuidForUpdate(uuid string) (*model.Community, error) {
	var community model.Community
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("uuid = ?", uuid).First(&community).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区 uuid=%s", uuid)
	}
	return &community, nil
}

// ExistsBySlug 短链是否已被占用
func (r *communityRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Community{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询社区短链 slug=%s", slug)
	}
	return count > 0, nil
}

// Create 创建社区
func (r *communityRepository) Create(community *model.Community) error {
	if err := r.db.Create(community).Error; err != nil {
		return wrapDBError(err, "创建社区")
	}
	return nil
}

// UpdateOwner 修改群主
// 条件更新：只有当前群主仍是 fromOwnerId 时才会写入
func (r *communityRepository) UpdateOwner(uuid, fromOwnerId, toOwnerId string) error {
	result := r.db.Model(&model.Community{}).
		Where("uuid = ? AND owner_id = ?", uuid, fromOwnerId).
		Update("owner_id", toOwnerId)
	return requireAffected(result, "社区 %s 群主已变更", uuid)
}

// AddMemberCount 调整正式成员数
// 使用 UpdateColumn + gorm.Expr 实现原子增减
func (r *communityRepository) AddMemberCount(uuid string, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := r.db.Model(&model.Community{}).Where("uuid = ?", uuid).
		UpdateColumn("member_cnt", gorm.Expr("member_cnt + ?", delta)).Error; err != nil {
		return wrapDBErrorf(err, "调整社区成员数 uuid=%s delta=%d", uuid, delta)
	}
	return nil
}
