package repository

import (
	"errors"
	"strings"

	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListFeatured(categoryID uint, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) (bool, error)
	Count() (int64, error)
	CountByCategory() (map[uint]int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if keyword := strings.TrimSpace(filter.Search); keyword != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "description"})
		query = query.Where(condition, repeatLikeArgs("%"+keyword+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var products []models.Product
	if err := query.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListFeatured 推荐商品（上架 + 推荐，可按分类与数量过滤）
func (r *GormProductRepository) ListFeatured(categoryID uint, limit int) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).Where("is_featured = ? AND is_active = ?", true, true)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var products []models.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit(clause.Associations).Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count 商品总数
func (r *GormProductRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByCategory 按分类统计商品数
func (r *GormProductRepository) CountByCategory() (map[uint]int64, error) {
	type row struct {
		CategoryID uint
		Total      int64
	}
	var rows []row
	if err := r.db.Model(&models.Product{}).
		Select("category_id, COUNT(*) as total").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, item := range rows {
		counts[item.CategoryID] = item.Total
	}
	return counts, nil
}
