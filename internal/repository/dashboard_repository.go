package repository

import (
	"time"

	"github.com/autoparts-enquiry/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(lowStockThreshold int) (DashboardOverviewRow, error)
	GetEnquiryTrends(startAt, endAt time.Time) ([]DashboardEnquiryTrendRow, error)
	GetTopViewedProducts(limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalProducts   int64
	TotalCategories int64
	TotalEnquiries  int64
	LowStockCount   int64
	OutOfStockCount int64
	TotalViews      int64
	NewContacts     int64
}

// DashboardEnquiryTrendRow 询价单按天统计
type DashboardEnquiryTrendRow struct {
	Day       string
	Enquiries int64
}

// DashboardProductRankingRow 商品浏览排行原始行
type DashboardProductRankingRow struct {
	ProductID uint
	Title     string
	Views     int64
	Stock     int
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(lowStockThreshold int) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}
	products := func() *gorm.DB { return r.db.Model(&models.Product{}) }

	if err := products().Count(&result.TotalProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Category{}).Count(&result.TotalCategories).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Enquiry{}).Count(&result.TotalEnquiries).Error; err != nil {
		return result, err
	}
	if err := products().Where("stock <= ?", lowStockThreshold).Count(&result.LowStockCount).Error; err != nil {
		return result, err
	}
	if err := products().Where("stock = ?", 0).Count(&result.OutOfStockCount).Error; err != nil {
		return result, err
	}
	if err := products().Select("COALESCE(SUM(views), 0)").Scan(&result.TotalViews).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.ContactMessage{}).Where("status = ?", "new").Count(&result.NewContacts).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetEnquiryTrends 按天统计询价单数量（[startAt, endAt)）
func (r *GormDashboardRepository) GetEnquiryTrends(startAt, endAt time.Time) ([]DashboardEnquiryTrendRow, error) {
	type enquiryTimeRow struct {
		CreatedAt time.Time
	}
	rows := make([]enquiryTimeRow, 0)
	if err := r.db.Model(&models.Enquiry{}).
		Select("created_at").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Order("created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// 在应用层按天聚合，避免不同数据库日期函数差异
	counts := make(map[string]int64)
	for _, row := range rows {
		counts[row.CreatedAt.In(startAt.Location()).Format("2006-01-02")]++
	}
	result := make([]DashboardEnquiryTrendRow, 0)
	for day := startAt; day.Before(endAt); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		result = append(result, DashboardEnquiryTrendRow{Day: key, Enquiries: counts[key]})
	}
	return result, nil
}

// GetTopViewedProducts 浏览量排行
func (r *GormDashboardRepository) GetTopViewedProducts(limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.db.Model(&models.Product{}).
		Select("id AS product_id, title, views, stock").
		Order("views DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
