package service

import (
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"
)

// BlogPostService 博客文章业务服务
type BlogPostService struct {
	repo repository.BlogPostRepository
	now  func() time.Time
}

// NewBlogPostService 创建文章服务
func NewBlogPostService(repo repository.BlogPostRepository) *BlogPostService {
	return &BlogPostService{repo: repo, now: time.Now}
}

// CreateBlogPostInput 创建/更新文章输入
type CreateBlogPostInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Image     string
	Author    string
	Published bool
}

// ListPublic 获取已发布文章（按发布时间倒序）
func (s *BlogPostService) ListPublic(page, pageSize int) ([]models.BlogPost, int64, error) {
	return s.repo.List(repository.BlogPostListFilter{
		Page:          page,
		PageSize:      pageSize,
		OnlyPublished: true,
	})
}

// GetPublicBySlug 获取已发布文章详情
func (s *BlogPostService) GetPublicBySlug(slug string) (*models.BlogPost, error) {
	post, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListAdmin 获取后台文章列表
func (s *BlogPostService) ListAdmin(search string, page, pageSize int) ([]models.BlogPost, int64, error) {
	return s.repo.List(repository.BlogPostListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	})
}

// GetAdminByID 获取后台文章详情
func (s *BlogPostService) GetAdminByID(id uint) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create 创建文章
func (s *BlogPostService) Create(input CreateBlogPostInput) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	if err := s.apply(post, input, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 更新文章，首次发布时间一旦写入不再改变
func (s *BlogPostService) Update(id uint, input CreateBlogPostInput) (*models.BlogPost, error) {
	post, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(post, input, &id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章
func (s *BlogPostService) Delete(id uint) error {
	if _, err := s.GetAdminByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *BlogPostService) apply(post *models.BlogPost, input CreateBlogPostInput, excludeID *uint) error {
	title := strings.TrimSpace(input.Title)
	slug := resolveSlug(input.Slug, title)
	if title == "" || slug == "" || strings.TrimSpace(input.Content) == "" {
		return ErrInvalidData
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = input.Content
	post.Image = strings.TrimSpace(input.Image)
	post.Author = strings.TrimSpace(input.Author)
	post.Published = input.Published
	if input.Published && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
	return nil
}
