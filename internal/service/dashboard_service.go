package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService 仪表盘服务
// 说明：聚合后台首页的目录与询价数据。
type DashboardService struct {
	repo           repository.DashboardRepository
	settingService *SettingService
	cfg            config.DashboardConfig
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, settingService *SettingService, cfg config.DashboardConfig) *DashboardService {
	return &DashboardService{repo: repo, settingService: settingService, cfg: cfg}
}

// DashboardStats 仪表盘总览
type DashboardStats struct {
	TotalProducts     int64 `json:"total_products"`
	TotalCategories   int64 `json:"total_categories"`
	TotalEnquiries    int64 `json:"total_enquiries"`
	LowStockCount     int64 `json:"low_stock_count"`
	OutOfStockCount   int64 `json:"out_of_stock_count"`
	TotalViews        int64 `json:"total_views"`
	NewContacts       int64 `json:"new_contacts"`
	LowStockThreshold int   `json:"low_stock_threshold"`
}

// DashboardTrendPoint 询价趋势点
type DashboardTrendPoint struct {
	Day       string `json:"day"`
	Enquiries int64  `json:"enquiries"`
}

// DashboardTrendResponse 询价趋势
type DashboardTrendResponse struct {
	Range  string                `json:"range"`
	Points []DashboardTrendPoint `json:"points"`
}

// DashboardTopProduct 浏览量排行条目
type DashboardTopProduct struct {
	ProductID uint   `json:"product_id"`
	Title     string `json:"title"`
	Views     int64  `json:"views"`
	Stock     int    `json:"stock"`
}

// LowStockThreshold 解析低库存阈值：请求参数 > 后台设置 > 配置文件
func (s *DashboardService) LowStockThreshold(override *int) int {
	if override != nil && *override >= 0 {
		return *override
	}
	threshold := s.cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}
	resolved, err := s.settingService.GetLowStockThreshold(threshold)
	if err != nil {
		logger.Warnw("dashboard_setting_load_failed", "error", err)
		return threshold
	}
	return resolved
}

// GetStats 获取总览统计
func (s *DashboardService) GetStats(ctx context.Context, thresholdOverride *int, forceRefresh bool) (*DashboardStats, error) {
	threshold := s.LowStockThreshold(thresholdOverride)
	cacheKey := fmt.Sprintf("dashboard:stats:%d", threshold)
	if !forceRefresh {
		var cached DashboardStats
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(threshold)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		TotalProducts:     row.TotalProducts,
		TotalCategories:   row.TotalCategories,
		TotalEnquiries:    row.TotalEnquiries,
		LowStockCount:     row.LowStockCount,
		OutOfStockCount:   row.OutOfStockCount,
		TotalViews:        row.TotalViews,
		NewContacts:       row.NewContacts,
		LowStockThreshold: threshold,
	}
	_ = cache.SetJSON(ctx, cacheKey, stats, dashboardCacheTTL)
	return stats, nil
}

// GetEnquiryTrends 获取询价趋势（today/7d/30d）
func (s *DashboardService) GetEnquiryTrends(rangeKey string, now time.Time) (*DashboardTrendResponse, error) {
	rangeKey = strings.ToLower(strings.TrimSpace(rangeKey))
	if rangeKey == "" {
		rangeKey = "7d"
	}
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var days int
	switch rangeKey {
	case "today":
		days = 1
	case "7d":
		days = 7
	case "30d":
		days = 30
	default:
		return nil, ErrDashboardRangeInvalid
	}
	startAt := todayStart.AddDate(0, 0, -(days - 1))
	endAt := todayStart.AddDate(0, 0, 1)

	rows, err := s.repo.GetEnquiryTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}
	points := make([]DashboardTrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, DashboardTrendPoint{Day: row.Day, Enquiries: row.Enquiries})
	}
	return &DashboardTrendResponse{Range: rangeKey, Points: points}, nil
}

// GetTopProducts 浏览量排行
func (s *DashboardService) GetTopProducts(limit int) ([]DashboardTopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	rows, err := s.repo.GetTopViewedProducts(limit)
	if err != nil {
		return nil, err
	}
	items := make([]DashboardTopProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, DashboardTopProduct{
			ProductID: row.ProductID,
			Title:     row.Title,
			Views:     row.Views,
			Stock:     row.Stock,
		})
	}
	return items, nil
}
