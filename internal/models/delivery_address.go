package models

import (
	"time"
)

// DeliveryAddress 收货地址
type DeliveryAddress struct {
	ID            uint      `gorm:"primarykey" json:"id"`                         // 主键
	UserID        uint      `gorm:"index;not null" json:"user_id"`                // 用户ID
	FullName      string    `gorm:"type:varchar(100);not null" json:"full_name"`  // 收货人
	PhoneNumber   string    `gorm:"type:varchar(32);not null" json:"phone_number"` // 电话
	RegionName    string    `gorm:"type:varchar(100)" json:"region_name"`         // 大区
	CityName      string    `gorm:"type:varchar(100)" json:"city_name"`           // 城市
	StreetAddress string    `gorm:"type:varchar(500);not null" json:"street_address"` // 街道地址
	PostalCode    string    `gorm:"type:varchar(20)" json:"postal_code,omitempty"` // 邮编
	DeliveryNotes string    `gorm:"type:text" json:"delivery_notes,omitempty"`    // 配送备注
	Label         string    `gorm:"type:varchar(50)" json:"label,omitempty"`      // 标签（家/公司）
	IsDefault     bool      `gorm:"not null;default:false;index" json:"is_default"` // 是否默认
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}
