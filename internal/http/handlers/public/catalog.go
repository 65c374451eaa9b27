package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/constants"
	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/i18n"
	"github.com/autoparts-enquiry/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
	featuredDefaultLimit = 10
	featuredMaxLimit     = 50
)

// CategoryDetailResponse 分类详情（含分类下商品）
type CategoryDetailResponse struct {
	Category *models.Category `json:"category"`
	Products []models.Product `json:"products"`
}

// GetConfig 获取站点公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	defaults := map[string]interface{}{
		"languages":                        []string{i18n.LocaleEN, i18n.LocaleSW},
		constants.SettingFieldSiteName:     "",
		constants.SettingFieldWhatsApp:     h.Config.WhatsApp.Number,
		constants.SettingFieldCurrency:     h.Config.WhatsApp.Currency,
		constants.SettingFieldContactEmail: "",
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	// 运营阈值仅后台可见
	delete(data, constants.SettingFieldLowStock)
	if h.CaptchaService != nil {
		data["captcha"] = h.CaptchaService.PublicSetting()
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryBySlug 获取分类及其商品
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	category, products, err := h.CategoryService.GetBySlugWithProducts(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, categoryLookupErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	response.Success(c, CategoryDetailResponse{Category: category, Products: products})
}

// GetProducts 获取商品列表（最新优先）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		categoryID = uint(parsed)
	}

	products, total, err := h.ProductService.ListPublic(categoryID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetFeaturedProducts 获取推荐商品
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	limit := handlershared.ParseQueryInt(c, "limit", featuredDefaultLimit)
	if limit <= 0 || limit > featuredMaxLimit {
		limit = featuredDefaultLimit
	}
	products, err := h.ProductService.ListFeatured(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// GetProductBySlug 根据 slug 获取商品详情（浏览量加一）
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, productLookupErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// GetPosts 获取已发布文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	posts, total, err := h.BlogPostService.ListPublic(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, handlershared.BuildPagination(page, pageSize, total))
}

// GetPostBySlug 获取已发布文章详情
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.BlogPostService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, postLookupErrorRules, response.CodeInternal, "error.post_fetch_failed")
		return
	}
	response.Success(c, post)
}
