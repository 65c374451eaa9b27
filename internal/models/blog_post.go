package models

import "time"

// BlogPost 博客文章表
type BlogPost struct {
	ID          uint       `gorm:"primarykey" json:"id"`                               // 主键
	Title       string     `gorm:"type:varchar(300);not null" json:"title"`            // 标题
	Slug        string     `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"` // 唯一标识
	Excerpt     string     `gorm:"type:text" json:"excerpt,omitempty"`                 // 摘要
	Content     string     `gorm:"type:text" json:"content"`                           // 正文
	Image       string     `gorm:"type:varchar(500)" json:"image,omitempty"`           // 封面图
	Author      string     `gorm:"type:varchar(200)" json:"author,omitempty"`          // 作者
	Published   bool       `gorm:"not null;default:false;index" json:"published"`      // 是否发布
	PublishedAt *time.Time `gorm:"index" json:"published_at"`                          // 首次发布时间
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (BlogPost) TableName() string {
	return "blog_posts"
}
