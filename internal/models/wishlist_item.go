package models

import (
	"time"
)

// WishlistItem 收藏项（收藏时的商品快照）
type WishlistItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                              // 主键
	UserID          uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`    // 用户ID
	ProductID       uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // 商品ID
	ProductName     string    `gorm:"type:varchar(200);not null" json:"product_name"`                   // 商品名称
	ProductPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"product_price"`       // 价格
	ProductImage    string    `gorm:"type:varchar(500)" json:"product_image"`                           // 图片
	ProductCategory string    `gorm:"type:varchar(100)" json:"product_category"`                        // 分类名
	AddedAt         time.Time `gorm:"index" json:"added_at"`                                            // 收藏时间
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
