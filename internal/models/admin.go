package models

import "time"

// Admin 后台账号表
type Admin struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                        // 主键
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`         // 登录邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                           // 密码哈希（不返回给前端）
	Role               string     `gorm:"type:varchar(20);not null;default:'staff';index" json:"role"` // 角色（owner/staff）
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                                 // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `json:"-"`                                                           // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"last_login_at"`                                               // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                                     // 创建时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// IsOwner 是否店主账号
func (a *Admin) IsOwner() bool {
	return a != nil && a.Role == "owner"
}
