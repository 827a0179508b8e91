package model

import (
	"gorm.io/gorm"
)

// 社区状态
const (
	CommunityStatusNormal  int8 = 0 // 正常
	CommunityStatusDisable int8 = 1 // 禁用
)

// Community 社区
// OwnerId 始终指向唯一一个 OWNER 成员，只能通过转让群主流程修改
type Community struct {
	gorm.Model
	Uuid             string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:社区唯一id"`
	Name             string `gorm:"column:name;type:varchar(50);not null;comment:社区名称"`
	Slug             string `gorm:"column:slug;uniqueIndex;type:varchar(80);not null;comment:社区短链"`
	Description      string `gorm:"column:description;type:varchar(500);comment:社区简介"`
	OwnerId          string `gorm:"column:owner_id;type:char(20);not null;comment:群主uuid"`
	MemberCnt        int    `gorm:"column:member_cnt;default:1;comment:正式成员数"`
	RequiresApproval bool   `gorm:"column:requires_approval;default:false;comment:加入是否需要审核"`
	Status           int8   `gorm:"column:status;default:0;comment:状态，0.正常，1.禁用"`
}

func (Community) TableName() string {
	return "community"
}
