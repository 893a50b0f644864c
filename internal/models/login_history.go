package models

import "time"

// LoginHistory 用户登录记录
type LoginHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`              // 用户ID
	LoginTime time.Time `gorm:"index;not null" json:"login_time"`           // 登录时间
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address,omitempty"` // 登录IP
	UserAgent string    `gorm:"type:varchar(512)" json:"user_agent,omitempty"` // UA
	Device    string    `gorm:"type:varchar(64)" json:"device,omitempty"`   // 登录来源
	RequestID string    `gorm:"type:varchar(64)" json:"request_id,omitempty"` // 请求ID
}

// TableName 指定表名
func (LoginHistory) TableName() string {
	return "login_history"
}
