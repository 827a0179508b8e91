package repository

import (
	"forum_server/internal/model"
	"forum_server/pkg/util/snowflake"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tagRepository TagRepository 接口的 gorm 实现
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreateByNames 按名称查找标签，不存在则创建
// 使用 ON CONFLICT DO NOTHING 处理并发创建同名标签
func (r *tagRepository) FindOrCreateByNames(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}
	candidates := make([]model.Tag, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, model.Tag{Uuid: snowflake.GenerateIDString(), Name: name})
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidates).Error; err != nil {
		return nil, wrapDBError(err, "创建标签")
	}
	if err := r.db.Where("name IN ?", names).Order("id").Find(&tags).Error; err != nil {
		return nil, wrapDBError(err, "查询标签")
	}
	return tags, nil
}

// FindByPost 查询帖子关联的标签
func (r *tagRepository) FindByPost(postUuid string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0)
	if err := r.db.Model(&model.Tag{}).
		Joins("JOIN post_tag ON post_tag.tag_uuid = tag.uuid").
		Where("post_tag.post_uuid = ?", postUuid).
		Order("tag.id").Find(&tags).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子标签 post=%s", postUuid)
	}
	return tags, nil
}

// AttachToPost 建立帖子与标签的关联，重复关联忽略
func (r *tagRepository) AttachToPost(postUuid string, tagUuids []string) error {
	if len(tagUuids) == 0 {
		return nil
	}
	links := make([]model.PostTag, 0, len(tagUuids))
	for _, tagUuid := range tagUuids {
		links = append(links, model.PostTag{PostUuid: postUuid, TagUuid: tagUuid})
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return wrapDBErrorf(err, "关联帖子标签 post=%s", postUuid)
	}
	return nil
}

// IncrementPostCount 批量为标签的已发布帖子数 +1
func (r *tagRepository) IncrementPostCount(tagUuids []string) error {
	if len(tagUuids) == 0 {
		return nil
	}
	if err := r.db.Model(&model.Tag{}).Where("uuid IN ?", tagUuids).
		UpdateColumn("post_count", gorm.Expr("post_count + ?", 1)).Error; err != nil {
		return wrapDBError(err, "累加标签帖子数")
	}
	return nil
}
