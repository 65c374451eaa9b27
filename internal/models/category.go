package models

import "time"

// Category 配件分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Slug        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"` // 唯一标识
	Image       string    `gorm:"type:varchar(500)" json:"image,omitempty"`           // 分类图片
	Description string    `gorm:"type:text" json:"description,omitempty"`             // 描述
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
