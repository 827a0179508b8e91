package repository

import (
	"time"

	"forum_server/internal/model"
	"forum_server/internal/permission"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的 gorm 实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// Create 创建新用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateGlobalRole 修改全站角色
func (r *userRepository) UpdateGlobalRole(uuid string, role permission.GlobalRole) error {
	result := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Update("global_role", role)
	return requireAffected(result, "修改用户角色 uuid=%s", uuid)
}

// UpdateBan 写入封禁状态
// 封禁时同时禁用账号；解封只清空封禁信息，不自动启用
func (r *userRepository) UpdateBan(uuid string, banned bool, bannedAt *time.Time, reason string) error {
	updates := map[string]any{
		"is_banned":  banned,
		"banned_at":  bannedAt,
		"ban_reason": reason,
	}
	if banned {
		updates["is_active"] = false
	}
	result := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Updates(updates)
	return requireAffected(result, "修改用户封禁状态 uuid=%s", uuid)
}

// UpdateActive 修改启用状态
func (r *userRepository) UpdateActive(uuid string, active bool) error {
	result := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Update("is_active", active)
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "修改用户启用状态 uuid=%s", uuid)
	}
	return nil
}
