package repository

import (
	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 收藏数据访问接口
type WishlistRepository interface {
	Create(item *models.WishlistItem) error
	Exists(userID, productID uint) (bool, error)
	Delete(userID, productID uint) (bool, error)
	ListByUser(userID uint) ([]models.WishlistItem, error)
	CountByUser(userID uint) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Create 新增收藏，重复收藏返回 ErrDuplicate
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return translateError(r.db.Create(item).Error)
}

// Exists 是否已收藏
func (r *GormWishlistRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete 取消收藏
func (r *GormWishlistRepository) Delete(userID, productID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser 用户收藏列表
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountByUser 用户收藏数
func (r *GormWishlistRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
