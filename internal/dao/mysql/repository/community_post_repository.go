package repository

import (
	"forum_server/internal/model"

	"gorm.io/gorm"
)

// communityPostRepository CommunityPostRepository 接口的 gorm 实现
type communityPostRepository struct {
	db *gorm.DB
}

// NewCommunityPostRepository 创建 CommunityPostRepository 实例
func NewCommunityPostRepository(db *gorm.DB) CommunityPostRepository {
	return &communityPostRepository{db: db}
}

func (r *communityPostRepository) FindByUuid(uuid string) (*model.CommunityPost, error) {
	var post model.CommunityPost
	if err := r.db.Where("uuid = ?", uuid).First(&post).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询社区帖子 uuid=%s", uuid)
	}
	return &post, nil
}

func (r *communityPostRepository) Create(post *model.CommunityPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "创建社区帖子")
	}
	return nil
}

func (r *communityPostRepository) UpdateContent(uuid, title, content string) error {
	if err := r.db.Model(&model.CommunityPost{}).Where("uuid = ?", uuid).
		Updates(map[string]any{"title": title, "content": content}).Error; err != nil {
		return wrapDBErrorf(err, "更新社区帖子 uuid=%s", uuid)
	}
	return nil
}

func (r *communityPostRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.CommunityPost{}).Error; err != nil {
		return wrapDBErrorf(err, "删除社区帖子 uuid=%s", uuid)
	}
	return nil
}
