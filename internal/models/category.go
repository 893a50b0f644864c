package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON 类型定义，用于存储支付详情等半结构化内容
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = make(JSON)
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// StringArray 字符串数组类型，用于存储tags、images等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return nil
	}
}

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                        // 主键
	ParentID    *uint     `gorm:"index" json:"parent_id,omitempty"`            // 父分类（为空表示顶级）
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`      // 名称
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`            // 唯一标识
	Description string    `gorm:"type:text" json:"description"`                // 描述
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`          // 图片
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`           // 排序权重
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`         // 是否启用
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
