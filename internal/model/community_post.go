package model

import (
	"forum_server/internal/permission"

	"gorm.io/gorm"
)

// CommunityPost 社区帖子与公告
// AuthorRole 是作者发帖时的社区角色快照
type CommunityPost struct {
	gorm.Model
	Uuid           string                   `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:帖子唯一id"`
	CommunityUuid  string                   `gorm:"column:community_uuid;type:char(20);index;not null;comment:所属社区"`
	CategoryUuid   string                   `gorm:"column:category_uuid;type:char(20);index;comment:社区分区"`
	AuthorId       string                   `gorm:"column:author_id;type:char(20);index;not null;comment:作者uuid"`
	AuthorRole     permission.CommunityRole `gorm:"column:author_role;type:varchar(16);not null;comment:发帖时社区角色"`
	Title          string                   `gorm:"column:title;type:varchar(100);not null;comment:标题"`
	Content        string                   `gorm:"column:content;type:text;comment:正文"`
	IsAnnouncement bool                     `gorm:"column:is_announcement;default:false;comment:是否公告"`
}

func (CommunityPost) TableName() string {
	return "community_post"
}
