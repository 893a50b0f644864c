package models

import (
	"time"
)

// CartItem 购物车项（加入时的商品快照）
type CartItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	ProductName  string    `gorm:"type:varchar(200);not null" json:"product_name"`               // 商品名称快照
	ProductPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"product_price"`   // 单价快照
	ProductImage string    `gorm:"type:varchar(500)" json:"product_image"`                       // 图片快照
	CategoryID   uint      `gorm:"index" json:"category_id"`                                     // 分类ID
	Quantity     int       `gorm:"not null" json:"quantity"`                                     // 数量
	Position     int       `gorm:"not null;default:0" json:"-"`                                  // 加入顺序
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
