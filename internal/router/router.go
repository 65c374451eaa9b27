package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autoparts-enquiry/internal/authz"
	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/config"
	adminhandlers "github.com/autoparts-enquiry/internal/http/handlers/admin"
	publichandlers "github.com/autoparts-enquiry/internal/http/handlers/public"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/objectstore"
	"github.com/autoparts-enquiry/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := cache.Prefix()
	redisClient := cache.Client()
	adminLoginRule := NewRateLimitRule(fmt.Sprintf("%s:rate:admin_login", redisPrefix), cfg.Security.LoginRateLimit, "error.login_too_many")
	checkoutRule := NewRateLimitRule(fmt.Sprintf("%s:rate:checkout", redisPrefix), cfg.Security.CheckoutRateLimit, "error.rate_limited")
	contactRule := NewRateLimitRule(fmt.Sprintf("%s:rate:contact", redisPrefix), cfg.Security.ContactRateLimit, "error.rate_limited")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储时直接提供上传的图片
	if strings.TrimSpace(cfg.Storage.Driver) == "" || strings.EqualFold(cfg.Storage.Driver, objectstore.DriverLocal) {
		r.Static("/uploads", localUploadDir(cfg.Storage))
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/categories/:slug", publicHandler.GetCategoryBySlug)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/featured", publicHandler.GetFeaturedProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.POST("/contacts", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.SubmitContact)

			// 搜索
			public.GET("/search", publicHandler.SearchProducts)
			public.GET("/search/recent", publicHandler.GetRecentSearches)
			public.DELETE("/search/recent", publicHandler.ClearRecentSearches)

			// 询价车（X-Cart-Session 标识会话）
			public.GET("/cart", publicHandler.GetCart)
			public.DELETE("/cart", publicHandler.ClearCart)
			public.POST("/cart/items", publicHandler.AddCartItem)
			public.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			public.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			public.POST("/cart/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByIP), publicHandler.Checkout)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)

			// 实时推送，浏览器可通过子协议或查询参数携带 token，需在分组鉴权之前注册
			admin.GET("/enquiries/stream", StreamJWTAuthMiddleware(c.AuthService, cfg.JWT.SecretKey), AdminRBACMiddleware(c.AuthzService), adminHandler.StreamEnquiries)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(c.AuthService, cfg.JWT.SecretKey), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 仪表盘
				authorized.GET("/dashboard/stats", adminHandler.GetDashboardStats)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/dashboard/top-products", adminHandler.GetDashboardTopProducts)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/low-stock", adminHandler.GetLowStockProducts)
				authorized.GET("/products/export", adminHandler.ExportProducts)
				authorized.POST("/products/import", adminHandler.ImportProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.GET("/categories/:id", adminHandler.GetAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 文章管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// 询价单
				authorized.GET("/enquiries", adminHandler.GetEnquiries)
				authorized.GET("/enquiries/recent", adminHandler.GetRecentEnquiries)
				authorized.GET("/enquiries/export", adminHandler.ExportEnquiries)
				authorized.GET("/enquiries/:id", adminHandler.GetEnquiry)

				// 留言
				authorized.GET("/contacts", adminHandler.GetContacts)
				authorized.GET("/contacts/:id", adminHandler.GetContact)
				authorized.PATCH("/contacts/:id/status", adminHandler.UpdateContactStatus)
				authorized.DELETE("/contacts/:id", adminHandler.DeleteContact)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 设置管理
				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)
				authorized.POST("/settings/email/test", adminHandler.SendSettingsTestEmail)

				// 后台账号（仅店主）
				authorized.GET("/admins", adminHandler.GetAdminUsers)
				authorized.POST("/admins", adminHandler.CreateAdminUser)
				authorized.DELETE("/admins/:id", adminHandler.DeleteAdminUser)

				// 权限目录
				authorized.GET("/authz/catalog", func(ctx *gin.Context) {
					roles, err := c.AuthzService.ListRoles()
					if err != nil {
						logger.Warnw("admin_authz_roles_load_failed", "error", err)
						roles = []string{}
					}
					response.Success(ctx, gin.H{
						"roles":       roles,
						"permissions": buildAdminPermissionCatalog(r),
					})
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func localUploadDir(cfg config.StorageConfig) string {
	dir := strings.TrimSpace(cfg.LocalDir)
	if dir == "" {
		return "./uploads"
	}
	return dir
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
