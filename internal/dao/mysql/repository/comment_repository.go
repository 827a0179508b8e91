package repository

import (
	"forum_server/internal/model"

	"gorm.io/gorm"
)

// commentRepository CommentRepository 接口的 gorm 实现
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建 CommentRepository 实例
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByUuid(uuid string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("uuid = ?", uuid).First(&comment).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询评论 uuid=%s", uuid)
	}
	return &comment, nil
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return wrapDBError(err, "创建评论")
	}
	return nil
}

func (r *commentRepository) UpdateContent(uuid, content string) error {
	if err := r.db.Model(&model.Comment{}).Where("uuid = ?", uuid).Update("content", content).Error; err != nil {
		return wrapDBErrorf(err, "更新评论 uuid=%s", uuid)
	}
	return nil
}

func (r *commentRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Comment{}).Error; err != nil {
		return wrapDBErrorf(err, "删除评论 uuid=%s", uuid)
	}
	return nil
}
