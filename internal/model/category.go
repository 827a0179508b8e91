package model

import "gorm.io/gorm"

// Category 分区
// CommunityUuid 为空表示主站分区，否则为社区内分区
// RequiresApproval 只对主站分区生效：发帖提交时若为 true 则进入待审核
type Category struct {
	gorm.Model
	Uuid             string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:分区唯一id"`
	CommunityUuid    string `gorm:"column:community_uuid;type:char(20);index;comment:所属社区，空为主站"`
	Name             string `gorm:"column:name;type:varchar(30);not null;comment:分区名称"`
	RequiresApproval bool   `gorm:"column:requires_approval;default:false;comment:发帖是否需要审核"`
}

func (Category) TableName() string {
	return "category"
}
