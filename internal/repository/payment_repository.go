package repository

import (
	"errors"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository 支付数据访问接口
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetLatestByOrder(orderID uint) (*models.Payment, error)
	Settle(input SettleInput) (SettleResult, error)
	MarkApproved(paymentID uint, at time.Time) (bool, error)
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create 创建支付记录
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID 根据 ID 获取支付记录
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetLatestByOrder 获取订单最新支付记录
func (r *GormPaymentRepository) GetLatestByOrder(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	result := r.db.Where("order_id = ?", orderID).Order("id desc").Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// MarkApproved 记录用户确认，仅对未确认的 pending 支付生效
func (r *GormPaymentRepository) MarkApproved(paymentID uint, at time.Time) (bool, error) {
	res := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ? AND approved_at IS NULL", paymentID, constants.PaymentStatusPending).
		Updates(map[string]interface{}{
			"approved_at": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Settle 仅当支付仍为 pending 时写入终态，支付成功时同事务推进订单 pending -> processing
func (r *GormPaymentRepository) Settle(input SettleInput) (SettleResult, error) {
	result := SettleResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     input.Status,
			"updated_at": input.At,
		}
		if input.TransactionID != "" {
			updates["transaction_id"] = input.TransactionID
		}
		if input.Status != constants.PaymentStatusPending {
			updates["settled_at"] = input.At
		}
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", input.PaymentID, constants.PaymentStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		result.Applied = res.RowsAffected > 0

		payment, err := r.WithTx(tx).GetByID(input.PaymentID)
		if err != nil {
			return err
		}
		result.Payment = payment
		if !result.Applied || payment == nil || input.Status != constants.PaymentStatusCompleted {
			return nil
		}

		orderRes := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", payment.OrderID, constants.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":     constants.OrderStatusProcessing,
				"updated_at": input.At,
			})
		if orderRes.Error != nil {
			return orderRes.Error
		}
		result.OrderAdvanced = orderRes.RowsAffected > 0
		return nil
	})
	if err != nil {
		return SettleResult{}, err
	}
	return result, nil
}
