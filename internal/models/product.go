package models

import (
	"time"
)

// Product 商品表
type Product struct {
	ID            uint        `gorm:"primarykey" json:"id"`                                         // 主键
	CategoryID    uint        `gorm:"not null;index" json:"category_id"`                            // 分类ID
	Name          string      `gorm:"type:varchar(200);not null" json:"name"`                       // 名称
	Description   string      `gorm:"type:text" json:"description"`                                 // 描述
	Price         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // 售价
	OriginalPrice *Money      `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`           // 划线价
	ImageURL      string      `gorm:"type:varchar(500)" json:"image_url"`                           // 主图
	Images        StringArray `gorm:"type:json" json:"images"`                                      // 图片数组
	Tags          StringArray `gorm:"type:json" json:"tags"`                                        // 标签数组
	Stock         int         `gorm:"not null;default:0" json:"stock"`                              // 库存（仅展示，下单不扣减）
	Rating        float64     `gorm:"not null;default:0" json:"rating"`                             // 评分
	ReviewCount   int         `gorm:"not null;default:0" json:"review_count"`                       // 评价数
	IsFeatured    bool        `gorm:"default:false;index" json:"is_featured"`                       // 是否推荐
	IsActive      bool        `gorm:"default:true;index" json:"is_active"`                          // 是否上架
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time   `json:"updated_at"`                                                   // 更新时间
	Category      *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`              // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// PrimaryImage 返回商品展示图
func (p *Product) PrimaryImage() string {
	if p == nil {
		return ""
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
