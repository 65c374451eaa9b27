package repository

import (
	"errors"

	"github.com/autoparts-enquiry/internal/models"

	"gorm.io/gorm"
)

// BlogPostRepository 博客文章数据访问接口
type BlogPostRepository interface {
	List(filter BlogPostListFilter) ([]models.BlogPost, int64, error)
	GetByID(id uint) (*models.BlogPost, error)
	GetBySlug(slug string, onlyPublished bool) (*models.BlogPost, error)
	Create(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormBlogPostRepository GORM 实现
type GormBlogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository 创建文章仓库
func NewBlogPostRepository(db *gorm.DB) *GormBlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// List 文章列表，公开列表按发布时间倒序，后台列表按创建时间倒序
func (r *GormBlogPostRepository) List(filter BlogPostListFilter) ([]models.BlogPost, int64, error) {
	query := r.db.Model(&models.BlogPost{})
	order := "created_at DESC, id DESC"
	if filter.OnlyPublished {
		query = query.Where("published = ?", true)
		order = "published_at DESC, id DESC"
	}
	query = whereKeyword(query, filter.Search, "title", "slug", "author")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	posts := make([]models.BlogPost, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(order).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章
func (r *GormBlogPostRepository) GetByID(id uint) (*models.BlogPost, error) {
	if id == 0 {
		return nil, nil
	}
	var post models.BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug 根据 slug 获取文章
func (r *GormBlogPostRepository) GetBySlug(slug string, onlyPublished bool) (*models.BlogPost, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("published = ?", true)
	}
	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormBlogPostRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update 更新文章
func (r *GormBlogPostRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete 删除文章
func (r *GormBlogPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormBlogPostRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
