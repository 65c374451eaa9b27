package repository

import (
	"errors"

	"github.com/autoparts-enquiry/internal/models"

	"gorm.io/gorm"
)

const defaultRecentEnquiryLimit = 20

// EnquiryRepository 询价单数据访问接口（只增不改）
type EnquiryRepository interface {
	Create(enquiry *models.Enquiry) error
	GetByID(id uint) (*models.Enquiry, error)
	List(filter EnquiryListFilter) ([]models.Enquiry, int64, error)
	ListRecent(limit int) ([]models.Enquiry, error)
	ListForExport(filter EnquiryListFilter) ([]models.Enquiry, error)
	Count() (int64, error)
}

// GormEnquiryRepository GORM 实现
type GormEnquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository 创建询价单仓库
func NewEnquiryRepository(db *gorm.DB) *GormEnquiryRepository {
	return &GormEnquiryRepository{db: db}
}

// Create 创建询价单
func (r *GormEnquiryRepository) Create(enquiry *models.Enquiry) error {
	return r.db.Create(enquiry).Error
}

// GetByID 根据 ID 获取询价单
func (r *GormEnquiryRepository) GetByID(id uint) (*models.Enquiry, error) {
	if id == 0 {
		return nil, nil
	}
	var enquiry models.Enquiry
	if err := r.db.First(&enquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enquiry, nil
}

func (r *GormEnquiryRepository) filtered(filter EnquiryListFilter) *gorm.DB {
	query := r.db.Model(&models.Enquiry{})
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return whereKeyword(query, filter.Keyword, "name", "phone", "location")
}

// List 询价单分页列表（最新优先）
func (r *GormEnquiryRepository) List(filter EnquiryListFilter) ([]models.Enquiry, int64, error) {
	query := r.filtered(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	enquiries := make([]models.Enquiry, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&enquiries).Error; err != nil {
		return nil, 0, err
	}
	return enquiries, total, nil
}

// ListRecent 最近的询价单
func (r *GormEnquiryRepository) ListRecent(limit int) ([]models.Enquiry, error) {
	enquiries := make([]models.Enquiry, 0)
	query := applyLimit(r.db.Model(&models.Enquiry{}), limit, defaultRecentEnquiryLimit)
	if err := query.Order("created_at DESC, id DESC").Find(&enquiries).Error; err != nil {
		return nil, err
	}
	return enquiries, nil
}

// ListForExport 按条件导出全部询价单（不分页）
func (r *GormEnquiryRepository) ListForExport(filter EnquiryListFilter) ([]models.Enquiry, error) {
	enquiries := make([]models.Enquiry, 0)
	if err := r.filtered(filter).Order("created_at DESC, id DESC").Find(&enquiries).Error; err != nil {
		return nil, err
	}
	return enquiries, nil
}

// Count 统计询价单总数
func (r *GormEnquiryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Enquiry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
