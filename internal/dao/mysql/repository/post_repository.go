package repository

import (
	"forum_server/internal/model"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postRepository PostRepository 接口的 gorm 实现
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建 PostRepository 实例
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByUuid(uuid string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("uuid = ?", uuid).First(&post).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 uuid=%s", uuid)
	}
	return &post, nil
}

// FindByUuidForUpdate 事务内加行锁读取帖子
func (r *postRepository) FindByUuidForUpdate(uuid string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("uuid = ?", uuid).First(&post).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 uuid=%s", uuid)
	}
	return &post, nil
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "创建帖子")
	}
	return nil
}

func (r *postRepository) UpdateContent(uuid, title, content string) error {
	if err := r.db.Model(&model.Post{}).Where("uuid = ?", uuid).
		Updates(map[string]any{"title": title, "content": content}).Error; err != nil {
		return wrapDBErrorf(err, "更新帖子 uuid=%s", uuid)
	}
	return nil
}

func (r *postRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Post{}).Error; err != nil {
		return wrapDBErrorf(err, "删除帖子 uuid=%s", uuid)
	}
	return nil
}

// UpdateStatus 条件写入审核结果
// 重复审核（from 与目标状态相同）时字段可能完全一致，MySQL 会报告 0 行受影响，
// 此时再确认一次当前状态，避免误判为并发冲突
func (r *postRepository) UpdateStatus(uuid string, from permission.PostStatus, update PostStatusUpdate) error {
	updates := map[string]any{
		"status":          update.Status,
		"approved_at":     update.ApprovedAt,
		"approved_by_id":  update.ApprovedById,
		"rejected_reason": update.RejectedReason,
	}
	if update.SubmittedAt != nil {
		updates["submitted_at"] = update.SubmittedAt
	}
	result := r.db.Model(&model.Post{}).Where("uuid = ? AND status = ?", uuid, from).Updates(updates)
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "更新帖子状态 uuid=%s", uuid)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if from == update.Status {
		var count int64
		if err := r.db.Model(&model.Post{}).Where("uuid = ? AND status = ?", uuid, from).Count(&count).Error; err != nil {
			return wrapDBErrorf(err, "更新帖子状态 uuid=%s", uuid)
		}
		if count > 0 {
			return nil
		}
	}
	return errorx.Newf(errorx.CodeConflict, "帖子 %s 的状态已变更", uuid)
}

// ListByStatus 分页列出指定状态的帖子
func (r *postRepository) ListByStatus(status permission.PostStatus, page, pageSize int) ([]model.Post, int64, error) {
	var (
		posts []model.Post
		total int64
	)
	query := r.db.Model(&model.Post{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "统计帖子 status=%s", status)
	}
	offset := (page - 1) * pageSize
	if err := query.Order("created_at ASC").Offset(offset).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "查询帖子列表 status=%s", status)
	}
	return posts, total, nil
}
