package model

import (
	"time"

	"forum_server/internal/permission"

	"gorm.io/gorm"
)

// CommunityMember 社区成员关系，(社区, 用户) 唯一
// 被封禁的成员保留记录，被踢出的成员记录直接删除
type CommunityMember struct {
	gorm.Model
	CommunityUuid string                      `gorm:"column:community_uuid;type:char(20);uniqueIndex:idx_community_user;not null;comment:社区ID"`
	UserUuid      string                      `gorm:"column:user_uuid;type:char(20);uniqueIndex:idx_community_user;index;not null;comment:用户ID"`
	Role          permission.CommunityRole    `gorm:"column:role;type:varchar(16);not null;default:MEMBER;comment:社区角色"`
	Status        permission.MembershipStatus `gorm:"column:status;type:varchar(16);index;not null;comment:成员状态"`
	BannedAt      *time.Time                  `gorm:"column:banned_at;type:datetime;comment:封禁时间"`
	BannedBy      string                      `gorm:"column:banned_by;type:char(20);comment:封禁操作人"`
	BanReason     string                      `gorm:"column:ban_reason;type:varchar(200);comment:封禁原因"`
}

func (CommunityMember) TableName() string {
	return "community_member"
}
