package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserID          uint      `gorm:"index;not null" json:"user_id"`                            // 用户ID
	TotalAmount     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 商品合计（不含运费与税）
	Status          string    `gorm:"index;not null" json:"status"`                             // 订单状态
	PaymentMethod   string    `gorm:"type:varchar(32);not null" json:"payment_method"`          // 支付方式
	DeliveryName    string    `gorm:"type:varchar(100)" json:"delivery_name"`                   // 收货人
	DeliveryAddress string    `gorm:"type:varchar(500)" json:"delivery_address"`                // 收货地址
	DeliveryCity    string    `gorm:"type:varchar(100)" json:"delivery_city"`                   // 城市
	DeliveryState   string    `gorm:"type:varchar(100)" json:"delivery_state"`                  // 大区
	DeliveryZip     string    `gorm:"type:varchar(20)" json:"delivery_zip"`                     // 邮编
	DeliveryPhone   string    `gorm:"type:varchar(32)" json:"delivery_phone"`                   // 联系电话
	DeliveryNotes   string    `gorm:"type:text" json:"delivery_notes"`                          // 配送备注
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt       time.Time `gorm:"index" json:"updated_at"`                                  // 更新时间

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"` // 最近一次支付
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
