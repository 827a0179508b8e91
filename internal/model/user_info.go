// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含全站角色、启用与封禁状态
package model

import (
	"time"

	"forum_server/internal/permission"

	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 用户唯一标识（雪花 ID 字符串）
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Nickname 用户昵称
	Nickname string `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`

	// Email 登录邮箱，唯一
	Email string `gorm:"column:email;uniqueIndex;type:varchar(64);not null;comment:邮箱"`

	// Password 密码（bcrypt 哈希），不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// GlobalRole 全站角色：ADMIN / MANAGER / USER
	// 只能由 ADMIN 通过修改角色接口变更
	GlobalRole permission.GlobalRole `gorm:"column:global_role;type:varchar(16);not null;default:USER;comment:全站角色"`

	// IsActive 账号是否启用
	IsActive bool `gorm:"column:is_active;not null;default:true;comment:是否启用"`

	// IsBanned 是否被封禁；封禁期间不能被启用
	IsBanned  bool       `gorm:"column:is_banned;index;not null;default:false;comment:是否封禁"`
	BannedAt  *time.Time `gorm:"column:banned_at;type:datetime;comment:封禁时间"`
	BanReason string     `gorm:"column:ban_reason;type:varchar(200);comment:封禁原因"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// SetPassword 使用 bcrypt 加密明文密码并写入 Password 字段
func (u *UserInfo) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}

// CanAct 账号是否可以发起写操作（启用且未封禁）
func (u *UserInfo) CanAct() bool {
	return u.IsActive && !u.IsBanned
}
