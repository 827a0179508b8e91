package repository

import (
	"forum_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository NotificationRepository 接口的 gorm 实现
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建 NotificationRepository 实例
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 写入通知；同一 uuid 重复投递时忽略
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

func (r *notificationRepository) ListByUser(userId string, page, pageSize int) ([]model.Notification, int64, error) {
	var (
		list  []model.Notification
		total int64
	)
	query := r.db.Model(&model.Notification{}).Where("user_id = ?", userId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "统计通知 user=%s", userId)
	}
	offset := (page - 1) * pageSize
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "查询通知 user=%s", userId)
	}
	return list, total, nil
}

func (r *notificationRepository) MarkRead(userId string, uuids []string) (int64, error) {
	if len(uuids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND uuid IN ? AND is_read = ?", userId, uuids, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "标记通知已读 user=%s", userId)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(userId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).Where("user_id = ? AND is_read = ?", userId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 user=%s", userId)
	}
	return count, nil
}
