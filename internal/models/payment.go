package models

import (
	"time"
)

// Payment 支付记录
type Payment struct {
	ID            uint       `gorm:"primarykey" json:"id"`                          // 主键
	OrderID       uint       `gorm:"index;not null" json:"order_id"`                // 订单ID
	Method        string     `gorm:"type:varchar(32);not null" json:"method"`       // 支付方式
	Amount        Money      `gorm:"type:decimal(20,2);not null" json:"amount"`     // 支付金额（含运费与税）
	Status        string     `gorm:"index;not null" json:"status"`                  // 支付状态
	TransactionID string     `gorm:"index" json:"transaction_id,omitempty"`         // 模拟交易号
	Details       JSON       `gorm:"type:json" json:"details"`                      // 支付方式相关详情
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt     time.Time  `gorm:"index" json:"updated_at"`                       // 更新时间
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`                          // 用户确认移动支付时间
	SettledAt     *time.Time `gorm:"index" json:"settled_at,omitempty"`             // 终态时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
