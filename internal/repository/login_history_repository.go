package repository

import (
	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// LoginHistoryRepository 登录记录数据访问接口
type LoginHistoryRepository interface {
	Create(record *models.LoginHistory) error
	ListByUser(userID uint, limit int) ([]models.LoginHistory, error)
}

// GormLoginHistoryRepository GORM 实现
type GormLoginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository 创建登录记录仓库
func NewLoginHistoryRepository(db *gorm.DB) *GormLoginHistoryRepository {
	return &GormLoginHistoryRepository{db: db}
}

// Create 写入登录记录
func (r *GormLoginHistoryRepository) Create(record *models.LoginHistory) error {
	if record == nil {
		return nil
	}
	return r.db.Create(record).Error
}

// ListByUser 用户最近登录记录（最新在前）
func (r *GormLoginHistoryRepository) ListByUser(userID uint, limit int) ([]models.LoginHistory, error) {
	query := r.db.Model(&models.LoginHistory{}).Where("user_id = ?", userID).Order("login_time DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []models.LoginHistory
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
