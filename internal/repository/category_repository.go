package repository

import (
	"errors"

	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	ListActive(parentID *uint) ([]models.Category, error)
	ListAll() ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) (bool, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListActive 启用的分类，parentID 为空时返回顶级分类
func (r *GormCategoryRepository) ListActive(parentID *uint) ([]models.Category, error) {
	query := r.db.Model(&models.Category{}).Where("is_active = ?", true)
	if parentID != nil && *parentID != 0 {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}
	var categories []models.Category
	if err := query.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAll 全部分类
func (r *GormCategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return translateError(r.db.Create(category).Error)
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return translateError(r.db.Save(category).Error)
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
