package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// EnquiryItem 询价单商品快照（价格为提交时的价格）
type EnquiryItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     Money `json:"price"`
}

// EnquiryItems 询价单商品列表列
type EnquiryItems []EnquiryItem

// Value 实现 driver.Valuer 接口
func (items EnquiryItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (items *EnquiryItems) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil || raw == nil {
		*items = EnquiryItems{}
		return err
	}
	return json.Unmarshal(raw, items)
}

// Enquiry 询价单表（创建后不可修改）
type Enquiry struct {
	ID              uint         `gorm:"primarykey" json:"id"`                                               // 主键
	Items           EnquiryItems `gorm:"type:json;not null" json:"items"`                                    // 商品快照
	Name            string       `gorm:"type:varchar(200)" json:"name,omitempty"`                            // 客户姓名
	Phone           string       `gorm:"type:varchar(50)" json:"phone,omitempty"`                            // 客户电话
	Location        string       `gorm:"type:varchar(300)" json:"location,omitempty"`                        // 客户所在地
	WhatsAppMessage string       `gorm:"column:whatsapp_message;type:text;not null" json:"whatsapp_message"` // 渲染后的消息正文
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`                                            // 创建时间
}

// TableName 指定表名
func (Enquiry) TableName() string {
	return "enquiries"
}

// TotalQuantity 返回询价商品总件数
func (e *Enquiry) TotalQuantity() int {
	total := 0
	for _, item := range e.Items {
		total += item.Quantity
	}
	return total
}
