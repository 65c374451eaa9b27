package repository

import (
	"errors"
	"strings"

	"github.com/autoparts-enquiry/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系留言数据访问接口
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(filter ContactListFilter) ([]models.ContactMessage, int64, error)
	UpdateStatus(id uint, status string) (int64, error)
	Delete(id uint) error
	CountByStatus(status string) (int64, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系留言仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create 创建留言
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// GetByID 根据 ID 获取留言
func (r *GormContactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	if id == 0 {
		return nil, nil
	}
	var message models.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List 留言列表（最新优先，可按状态过滤）
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.Model(&models.ContactMessage{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	messages := make([]models.ContactMessage, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// UpdateStatus 更新留言状态，返回受影响行数
func (r *GormContactRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除留言
func (r *GormContactRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContactMessage{}, id).Error
}

// CountByStatus 按状态统计留言数
func (r *GormContactRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ContactMessage{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
