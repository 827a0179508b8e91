package model

import (
	"time"

	"forum_server/internal/permission"

	"gorm.io/gorm"
)

// Post 主站帖子
// AuthorGlobalRole 是作者发帖时的全站角色快照，创建后不再修改，权限判断只看它
type Post struct {
	gorm.Model
	Uuid             string                `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:帖子唯一id"`
	AuthorId         string                `gorm:"column:author_id;type:char(20);index;not null;comment:作者uuid"`
	AuthorGlobalRole permission.GlobalRole `gorm:"column:author_global_role;type:varchar(16);not null;comment:发帖时作者角色"`
	CategoryUuid     string                `gorm:"column:category_uuid;type:char(20);index;not null;comment:分区"`
	Title            string                `gorm:"column:title;type:varchar(100);not null;comment:标题"`
	Content          string                `gorm:"column:content;type:text;comment:正文"`
	Status           permission.PostStatus `gorm:"column:status;type:varchar(16);index;not null;comment:审核状态"`
	SubmittedAt      *time.Time            `gorm:"column:submitted_at;type:datetime;comment:提交时间"`
	ApprovedAt       *time.Time            `gorm:"column:approved_at;type:datetime;comment:审核通过时间"`
	ApprovedById     string                `gorm:"column:approved_by_id;type:char(20);comment:审核人"`
	RejectedReason   string                `gorm:"column:rejected_reason;type:varchar(200);comment:驳回原因"`
}

func (Post) TableName() string {
	return "post"
}

// Tag 标签，PostCount 为已发布帖子数
type Tag struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:标签唯一id"`
	Name      string `gorm:"column:name;uniqueIndex;type:varchar(30);not null;comment:标签名"`
	PostCount int    `gorm:"column:post_count;default:0;comment:已发布帖子数"`
}

func (Tag) TableName() string {
	return "tag"
}

// PostTag 帖子与标签关联
type PostTag struct {
	ID       uint   `gorm:"primarykey"`
	PostUuid string `gorm:"column:post_uuid;type:char(20);uniqueIndex:idx_post_tag;not null"`
	TagUuid  string `gorm:"column:tag_uuid;type:char(20);uniqueIndex:idx_post_tag;index;not null"`
}

func (PostTag) TableName() string {
	return "post_tag"
}

// Comment 主站评论，同样保存作者角色快照
type Comment struct {
	gorm.Model
	Uuid             string                `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:评论唯一id"`
	PostUuid         string                `gorm:"column:post_uuid;type:char(20);index;not null;comment:所属帖子"`
	AuthorId         string                `gorm:"column:author_id;type:char(20);index;not null;comment:作者uuid"`
	AuthorGlobalRole permission.GlobalRole `gorm:"column:author_global_role;type:varchar(16);not null;comment:评论时作者角色"`
	Content          string                `gorm:"column:content;type:varchar(2000);not null;comment:内容"`
}

func (Comment) TableName() string {
	return "comment"
}
