package repository

import (
	"time"

	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	ReplaceByUser(userID uint, items []models.CartItem) error
	ClearByUser(userID uint) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（按加入顺序）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceByUser 整体覆盖用户购物车
func (r *GormCartRepository) ReplaceByUser(userID uint, items []models.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.WithTx(tx).ClearByUser(userID); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		now := time.Now()
		rows := make([]models.CartItem, len(items))
		for i, item := range items {
			item.ID = 0
			item.UserID = userID
			item.Position = i
			if item.CreatedAt.IsZero() {
				item.CreatedAt = now
			}
			item.UpdatedAt = now
			rows[i] = item
		}
		return tx.Create(&rows).Error
	})
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
