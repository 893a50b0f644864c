package repository

import (
	"errors"
	"time"

	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	Create(address *models.DeliveryAddress) error
	GetByIDAndUser(id, userID uint) (*models.DeliveryAddress, error)
	ListByUser(userID uint) ([]models.DeliveryAddress, error)
	Update(address *models.DeliveryAddress) error
	Delete(id, userID uint) (bool, error)
	SetDefault(id, userID uint) (bool, error)
	CountByUser(userID uint) (int64, error)
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建收货地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func unsetDefaults(tx *gorm.DB, userID uint, exceptID uint) error {
	query := tx.Model(&models.DeliveryAddress{}).Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update("is_default", false).Error
}

// Create 创建地址，设为默认时同事务取消其他默认
func (r *GormAddressRepository) Create(address *models.DeliveryAddress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := unsetDefaults(tx, address.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

// GetByIDAndUser 获取用户地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.DeliveryAddress, error) {
	var address models.DeliveryAddress
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ListByUser 用户地址列表（默认地址在前）
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.DeliveryAddress, error) {
	var addresses []models.DeliveryAddress
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Update 更新地址，设为默认时同事务取消其他默认
func (r *GormAddressRepository) Update(address *models.DeliveryAddress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := unsetDefaults(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		address.UpdatedAt = time.Now()
		return tx.Save(address).Error
	})
}

// Delete 删除地址
func (r *GormAddressRepository) Delete(id, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.DeliveryAddress{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetDefault 设置默认地址，地址不存在时不改动任何记录
func (r *GormAddressRepository) SetDefault(id, userID uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DeliveryAddress{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true
		if err := unsetDefaults(tx, userID, id); err != nil {
			return err
		}
		return tx.Model(&models.DeliveryAddress{}).Where("id = ?", id).Updates(map[string]interface{}{
			"is_default": true,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// CountByUser 用户地址数
func (r *GormAddressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.DeliveryAddress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
