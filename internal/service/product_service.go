package service

import (
	"strings"

	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	CategoryID       uint
	Title            string
	Slug             string
	Price            decimal.Decimal
	Stock            int
	Description      string
	Images           []string
	Brand            string
	OEMNumber        string
	CompatibleModels []string
	Featured         bool
}

// ListPublic 获取公开商品列表（最新优先）
func (s *ProductService) ListPublic(categoryID uint, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
	})
}

// ListFeatured 获取推荐商品
func (s *ProductService) ListFeatured(limit int) ([]models.Product, error) {
	return s.repo.ListFeatured(limit)
}

// GetPublicBySlug 获取商品详情并累加浏览量
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	affected, err := s.repo.IncrementViews(product.ID)
	if err != nil {
		logger.Warnw("product_views_increment_failed", "product_id", product.ID, "error", err)
		return product, nil
	}
	if affected > 0 {
		product.Views++
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(search),
		WithCategory: true,
	})
}

// ListLowStock 获取低库存商品
func (s *ProductService) ListLowStock(threshold, limit int) ([]models.Product, error) {
	if threshold < 0 {
		threshold = 0
	}
	return s.repo.ListLowStock(threshold, limit)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.apply(product, input, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品，浏览量保持不变
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(product, input, &id); err != nil {
		return nil, err
	}
	product.Category = nil
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（硬删除）
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetAdminByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ProductService) apply(product *models.Product, input CreateProductInput, excludeID *uint) error {
	title := strings.TrimSpace(input.Title)
	slug := resolveSlug(input.Slug, title)
	if title == "" || slug == "" {
		return ErrInvalidData
	}
	if input.Price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if input.Stock < 0 {
		return ErrProductStockInvalid
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}

	product.CategoryID = category.ID
	product.Title = title
	product.Slug = slug
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Stock = input.Stock
	product.Description = strings.TrimSpace(input.Description)
	product.Images = models.StringArray(cleanStrings(input.Images))
	product.Brand = strings.TrimSpace(input.Brand)
	product.OEMNumber = strings.TrimSpace(input.OEMNumber)
	product.CompatibleModels = models.StringArray(cleanStrings(input.CompatibleModels))
	product.Featured = input.Featured
	return nil
}

// cleanStrings 去除空白项，保持原有顺序
func cleanStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
