package public

import (
	"strconv"
	"strings"

	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SearchProducts 关键词搜索商品，标题命中优先，其次按浏览量
func (h *Handler) SearchProducts(c *gin.Context) {
	query, ok := parseSearchQuery(c)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	products, err := h.SearchService.Search(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	if strings.TrimSpace(query.Term) != "" {
		h.CartService.RecordSearch(c.Request.Context(), resolveCartSession(c), query.Term)
	}
	response.Success(c, gin.H{
		"query": strings.TrimSpace(query.Term),
		"total": len(products),
		"items": products,
	})
}

// GetRecentSearches 获取当前会话最近搜索词
func (h *Handler) GetRecentSearches(c *gin.Context) {
	response.Success(c, h.CartService.RecentSearches(c.Request.Context(), resolveCartSession(c)))
}

// ClearRecentSearches 清空当前会话最近搜索词
func (h *Handler) ClearRecentSearches(c *gin.Context) {
	if err := h.CartService.ClearRecentSearches(c.Request.Context(), resolveCartSession(c)); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, []string{})
}

func parseSearchQuery(c *gin.Context) (service.SearchQuery, bool) {
	query := service.SearchQuery{Term: c.Query("q")}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return query, false
		}
		query.CategoryID = uint(id)
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return query, false
		}
		query.MinPrice = &value
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return query, false
		}
		query.MaxPrice = &value
	}
	if raw := strings.TrimSpace(c.Query("in_stock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return query, false
		}
		query.InStockOnly = inStock
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, false
		}
		query.Limit = limit
	}
	return query, true
}
