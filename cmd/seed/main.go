package main

import (
	"fmt"
	"time"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/models"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	category string
	product  models.Product
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Brakes", Slug: "brakes", Description: "Brake pads, discs, shoes and calipers"},
		{Name: "Engine", Slug: "engine", Description: "Filters, belts, plugs and gaskets"},
		{Name: "Suspension", Slug: "suspension", Description: "Shock absorbers, bushes and links"},
		{Name: "Electrical", Slug: "electrical", Description: "Batteries, bulbs and sensors"},
	}

	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Slug)
			categoryIDs[cat.Slug] = cat.ID
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
			categoryIDs[cat.Slug] = existing.ID
		}
	}

	// 添加配件
	products := []seedProduct{
		{category: "brakes", product: models.Product{
			Title:            "Front Brake Pad Set",
			Slug:             "front-brake-pad-set-toyota-corolla",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
			Stock:            24,
			Description:      "Ceramic front brake pads with wear indicators.",
			Images:           models.StringArray{"https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?w=800"},
			Brand:            "Bosch",
			OEMNumber:        "04465-02220",
			CompatibleModels: models.StringArray{"Toyota Corolla 2008-2013", "Toyota Auris"},
			Featured:         true,
		}},
		{category: "brakes", product: models.Product{
			Title:            "Rear Brake Disc",
			Slug:             "rear-brake-disc-nissan-xtrail",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(6800)),
			Stock:            6,
			Description:      "Solid rear disc, sold individually.",
			Brand:            "Brembo",
			OEMNumber:        "43206-JG01A",
			CompatibleModels: models.StringArray{"Nissan X-Trail T31"},
		}},
		{category: "engine", product: models.Product{
			Title:            "Oil Filter",
			Slug:             "oil-filter-toyota-1nz",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(850)),
			Stock:            120,
			Description:      "Spin-on oil filter for 1NZ and 2NZ engines.",
			Brand:            "Denso",
			OEMNumber:        "90915-YZZE1",
			CompatibleModels: models.StringArray{"Toyota Vitz", "Toyota Probox", "Toyota Fielder"},
			Featured:         true,
		}},
		{category: "engine", product: models.Product{
			Title:            "Timing Belt Kit",
			Slug:             "timing-belt-kit-subaru-ej20",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(18500)),
			Stock:            3,
			Description:      "Belt, tensioner and idler pulleys.",
			Brand:            "Gates",
			OEMNumber:        "13028AA231",
			CompatibleModels: models.StringArray{"Subaru Forester SG", "Subaru Impreza GD"},
		}},
		{category: "suspension", product: models.Product{
			Title:            "Front Shock Absorber",
			Slug:             "front-shock-absorber-honda-fit",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromInt(9200)),
			Stock:            10,
			Description:      "Gas-charged strut, left or right.",
			Brand:            "KYB",
			OEMNumber:        "51610-TF0-J01",
			CompatibleModels: models.StringArray{"Honda Fit GE6"},
			Featured:         true,
		}},
		{category: "electrical", product: models.Product{
			Title:            "Oxygen Sensor",
			Slug:             "oxygen-sensor-mazda-demio",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(7350.50)),
			Stock:            0,
			Description:      "Upstream lambda sensor.",
			Brand:            "NGK",
			OEMNumber:        "ZJ38-18-8G1",
			CompatibleModels: models.StringArray{"Mazda Demio DE"},
		}},
	}

	for _, item := range products {
		product := item.product
		product.CategoryID = categoryIDs[item.category]
		if product.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category %s missing", product.Slug, item.category)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加博客文章
	now := time.Now()
	posts := []models.BlogPost{
		{
			Title:       "How to tell when your brake pads need replacing",
			Slug:        "when-to-replace-brake-pads",
			Excerpt:     "Squealing, longer stopping distances and a pulsing pedal are the usual signs.",
			Content:     "Most pads carry a metal wear indicator that squeals once the friction material is thin. Check pad thickness at every service and replace below 3mm.",
			Author:      "Workshop Team",
			Published:   true,
			PublishedAt: &now,
		},
		{
			Title:   "Genuine vs aftermarket filters",
			Slug:    "genuine-vs-aftermarket-filters",
			Excerpt: "What the OEM number tells you about a replacement part.",
			Content: "Draft.",
			Author:  "Workshop Team",
		},
	}
	for _, post := range posts {
		var existing models.BlogPost
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// 更新网站配置
	configData := map[string]interface{}{
		constants.SettingFieldSiteName:     "Auto Parts Enquiry",
		constants.SettingFieldCurrency:     cfg.WhatsApp.Currency,
		constants.SettingFieldWhatsApp:     cfg.WhatsApp.Number,
		constants.SettingFieldContactEmail: cfg.Email.From,
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteConfig).First(&setting).Error; err != nil {
		// 不存在则创建
		setting = models.Setting{
			Key:       constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(configData),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create setting: %v", err)
		} else {
			stdLog.Println("Created site config")
		}
	} else {
		setting.ValueJSON = models.JSON(configData)
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("Failed to update setting: %v", err)
		} else {
			stdLog.Println("Updated site config")
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Printf("- %d Categories\n", len(categories))
	fmt.Printf("- %d Products (含缺货与低库存演示)\n", len(products))
	fmt.Printf("- %d Posts (1 published + 1 draft)\n", len(posts))
	fmt.Println("- Site configuration")
}
