package repository

import (
	"errors"

	"github.com/autoparts-enquiry/internal/models"

	"gorm.io/gorm"
)

const (
	defaultFeaturedLimit = 10
	defaultLowStockLimit = 100
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListAll() ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	ListLowStock(threshold int, limit int) ([]models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	IncrementViews(id uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品分页列表（最新优先）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	query = whereKeyword(query, filter.Search, "title", "slug", "brand", "oem_number")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll 全量商品，供搜索扫描使用
func (r *GormProductRepository) ListAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListFeatured 推荐商品
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	query := applyLimit(r.db.Where("featured = ?", true), limit, defaultFeaturedLimit)
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory 分类下全部商品
func (r *GormProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("category_id = ?", categoryID).Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListLowStock 库存不高于阈值的商品（库存升序）
func (r *GormProductRepository) ListLowStock(threshold int, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	query := applyLimit(r.db.Where("stock <= ?", threshold), limit, defaultLowStockLimit)
	if err := query.Order("stock ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Category").Create(product).Error
}

// editableProductColumns 后台可编辑字段，浏览量只通过 IncrementViews 修改
var editableProductColumns = []string{
	"category_id", "title", "slug", "price", "stock", "description", "images",
	"brand", "oem_number", "compatible_models", "featured", "updated_at",
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(product).Select(editableProductColumns).Updates(product).Error
}

// Delete 删除商品（硬删除）
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViews 浏览量原子加一，返回受影响行数
func (r *GormProductRepository) IncrementViews(id uint) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
