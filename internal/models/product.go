package models

import "time"

// Product 配件商品表（硬删除，无软删除字段）
type Product struct {
	ID               uint        `gorm:"primarykey" json:"id"`                                                  // 主键
	CategoryID       uint        `gorm:"not null;index" json:"category_id"`                                     // 分类ID
	Title            string      `gorm:"type:varchar(300);not null" json:"title"`                               // 标题
	Slug             string      `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`                    // 唯一标识
	Price            Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                    // 单价
	Stock            int         `gorm:"not null;default:0;index" json:"stock"`                                 // 库存
	Description      string      `gorm:"type:text" json:"description,omitempty"`                                // 描述
	Images           StringArray `gorm:"type:json" json:"images"`                                               // 图片（首张为主图）
	Brand            string      `gorm:"type:varchar(200)" json:"brand,omitempty"`                              // 品牌
	OEMNumber        string      `gorm:"column:oem_number;type:varchar(200);index" json:"oem_number,omitempty"` // OEM 零件号
	CompatibleModels StringArray `gorm:"type:json" json:"compatible_models"`                                    // 适配车型
	Featured         bool        `gorm:"not null;default:false;index" json:"featured"`                          // 是否推荐
	Views            int64       `gorm:"not null;default:0" json:"views"`                                       // 浏览次数
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt        time.Time   `json:"updated_at"`                                                            // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// MainImage 返回主图
func (p *Product) MainImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
