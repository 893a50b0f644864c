package models

import (
	"time"
)

// OrderItem 订单项表（下单时的商品快照）
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID      uint      `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID    uint      `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductName  string    `gorm:"type:varchar(200);not null" json:"product_name"`            // 商品名称快照
	ProductPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"product_price"` // 单价快照
	ProductImage string    `gorm:"type:varchar(500)" json:"product_image"`                    // 图片快照
	Quantity     int       `gorm:"not null" json:"quantity"`                                  // 数量
	Subtotal     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 小计
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
