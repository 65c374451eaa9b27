package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/autoparts-enquiry/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: slug, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string, stock int, views int64) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Title:      slug,
		Slug:       slug,
		Price:      models.NewMoneyFromInt(100),
		Stock:      stock,
		Views:      views,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDashboardOverview(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	category := seedCategory(t, db, "brakes")
	seedCategory(t, db, "filters")
	seedProduct(t, db, category.ID, "pad-a", 0, 10)
	seedProduct(t, db, category.ID, "pad-b", 10, 5)
	seedProduct(t, db, category.ID, "pad-c", 11, 7)
	if err := db.Create(&models.Enquiry{WhatsAppMessage: "x", Items: models.EnquiryItems{{ProductID: 1, Quantity: 1}}}).Error; err != nil {
		t.Fatalf("create enquiry failed: %v", err)
	}

	row, err := repo.GetOverview(10)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if row.TotalProducts != 3 || row.TotalCategories != 2 || row.TotalEnquiries != 1 {
		t.Fatalf("unexpected totals: %+v", row)
	}
	if row.LowStockCount != 2 {
		t.Fatalf("low stock want 2 got %d", row.LowStockCount)
	}
	if row.OutOfStockCount != 1 {
		t.Fatalf("out of stock want 1 got %d", row.OutOfStockCount)
	}
	if row.TotalViews != 22 {
		t.Fatalf("total views want 22 got %d", row.TotalViews)
	}
}

func TestDashboardEnquiryTrendsFillsEmptyDays(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	enquiry := &models.Enquiry{WhatsAppMessage: "x", CreatedAt: start.Add(26 * time.Hour)}
	if err := db.Create(enquiry).Error; err != nil {
		t.Fatalf("create enquiry failed: %v", err)
	}

	rows, err := repo.GetEnquiryTrends(start, start.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("get trends failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows want 3 got %d", len(rows))
	}
	if rows[0].Enquiries != 0 || rows[1].Enquiries != 1 || rows[2].Enquiries != 0 {
		t.Fatalf("unexpected trend rows: %+v", rows)
	}
}

func TestDashboardTopViewedProducts(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	category := seedCategory(t, db, "engine")
	seedProduct(t, db, category.ID, "low", 3, 1)
	seedProduct(t, db, category.ID, "high", 3, 99)

	rows, err := repo.GetTopViewedProducts(1)
	if err != nil {
		t.Fatalf("top viewed failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "high" || rows[0].Views != 99 {
		t.Fatalf("unexpected ranking: %+v", rows)
	}
}
