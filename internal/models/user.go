package models

import (
	"time"
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                              // 主键
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`            // 姓名
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`                 // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                                 // 密码哈希（不返回给前端）
	Phone        string     `gorm:"type:varchar(32)" json:"phone,omitempty"`           // 电话
	Address      string     `gorm:"type:varchar(500)" json:"address,omitempty"`        // 地址
	City         string     `gorm:"type:varchar(100)" json:"city,omitempty"`           // 城市
	State        string     `gorm:"type:varchar(100)" json:"state,omitempty"`          // 州/大区
	ZipCode      string     `gorm:"type:varchar(20)" json:"zip_code,omitempty"`        // 邮编
	Country      string     `gorm:"type:varchar(100)" json:"country,omitempty"`        // 国家
	DateOfBirth  string     `gorm:"type:varchar(20)" json:"date_of_birth,omitempty"`   // 出生日期
	Avatar       string     `gorm:"type:varchar(500)" json:"avatar,omitempty"`         // 头像
	Role         string     `gorm:"type:varchar(20);not null;default:'customer'" json:"role"` // 角色
	IsActive     bool       `gorm:"default:true" json:"is_active"`                     // 是否启用
	LastLogin    *time.Time `json:"last_login,omitempty"`                              // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
