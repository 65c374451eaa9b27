package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 获取仪表盘总览
func (h *Handler) GetDashboardStats(c *gin.Context) {
	override, ok := parseThresholdOverride(c)
	if !ok {
		return
	}
	forceRefresh, _ := strconv.ParseBool(strings.TrimSpace(c.Query("force_refresh")))

	stats, err := h.DashboardService.GetStats(c.Request.Context(), override, forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetDashboardTrends 获取询价趋势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	trends, err := h.DashboardService.GetEnquiryTrends(c.Query("range"), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrDashboardRangeInvalid) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, trends)
}

// GetDashboardTopProducts 获取浏览量排行
func (h *Handler) GetDashboardTopProducts(c *gin.Context) {
	limit := handlershared.ParseQueryInt(c, "limit", 5)
	products, err := h.DashboardService.GetTopProducts(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// parseThresholdOverride 解析请求中的低库存阈值，未传返回 nil
func parseThresholdOverride(c *gin.Context) (*int, bool) {
	raw := strings.TrimSpace(c.Query("low_stock_threshold"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("threshold"))
	}
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value, true
}
