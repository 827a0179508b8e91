package repository

import (
	"forum_server/internal/model"

	"gorm.io/gorm"
)

// categoryRepository CategoryRepository 接口的 gorm 实现
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindByUuid(uuid string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("uuid = ?", uuid).First(&category).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询分区 uuid=%s", uuid)
	}
	return &category, nil
}

func (r *categoryRepository) ListByCommunity(communityUuid string) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := r.db.Where("community_uuid = ?", communityUuid).Order("id").Find(&categories).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询分区列表 community=%s", communityUuid)
	}
	return categories, nil
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return wrapDBError(err, "创建分区")
	}
	return nil
}

func (r *categoryRepository) Delete(uuid string) error {
	result := r.db.Where("uuid = ?", uuid).Delete(&model.Category{})
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "删除分区 uuid=%s", uuid)
	}
	if result.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "分区 %s 不存在", uuid)
	}
	return nil
}
