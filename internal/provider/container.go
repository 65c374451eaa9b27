package provider

import (
	"context"

	"github.com/autoparts-enquiry/internal/authz"
	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/objectstore"
	"github.com/autoparts-enquiry/internal/queue"
	"github.com/autoparts-enquiry/internal/realtime"
	"github.com/autoparts-enquiry/internal/repository"
	"github.com/autoparts-enquiry/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Hub         *realtime.Hub
	ObjectStore objectstore.Store

	// Repositories
	AdminRepo     repository.AdminRepository
	ProductRepo   repository.ProductRepository
	CategoryRepo  repository.CategoryRepository
	BlogPostRepo  repository.BlogPostRepository
	EnquiryRepo   repository.EnquiryRepository
	ContactRepo   repository.ContactRepository
	SettingRepo   repository.SettingRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService           *authz.Service
	AuthService            *service.AuthService
	AdminUserService       *service.AdminUserService
	EmailService           *service.EmailService
	NotificationService    *service.NotificationService
	CaptchaService         *service.CaptchaService
	UploadService          *service.UploadService
	ProductService         *service.ProductService
	ProductTransferService *service.ProductTransferService
	CategoryService        *service.CategoryService
	BlogPostService        *service.BlogPostService
	SettingService         *service.SettingService
	CartService            *service.CartService
	CheckoutService        *service.CheckoutService
	SearchService          *service.SearchService
	EnquiryService         *service.EnquiryService
	ContactService         *service.ContactService
	DashboardService       *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	store, err := objectstore.New(context.Background(), cfg.Storage)
	if err != nil {
		logger.Errorw("provider_init_object_store_failed", "driver", cfg.Storage.Driver, "error", err)
		store = objectstore.NewLocalStore(cfg.Storage.LocalDir, "/uploads")
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Hub:         realtime.NewHub(cfg.CORS.AllowedOrigins...),
		ObjectStore: store,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	// 3. 同步后台账号角色绑定
	c.syncAdminRoles()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BlogPostRepo = repository.NewBlogPostRepository(db)
	c.EnquiryRepo = repository.NewEnquiryRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.NotificationService = service.NewNotificationService(c.QueueClient, c.Hub, c.EmailService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminUserService = service.NewAdminUserService(c.AdminRepo, c.AuthService, c.AuthzService)
	c.UploadService = service.NewUploadService(c.Config.Upload, c.ObjectStore)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.ProductTransferService = service.NewProductTransferService(c.ProductService, c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.BlogPostService = service.NewBlogPostService(c.BlogPostRepo)
	c.CartService = service.NewCartService(c.Config.Cart, c.ProductRepo)
	c.CheckoutService = service.NewCheckoutService(c.Config.WhatsApp, c.EnquiryRepo, c.SettingService, c.NotificationService)
	c.SearchService = service.NewSearchService(c.ProductRepo, c.Config.Search)
	c.EnquiryService = service.NewEnquiryService(c.EnquiryRepo, c.ProductRepo)
	c.ContactService = service.NewContactService(c.ContactRepo, c.NotificationService)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.SettingService, c.Config.Dashboard)
}

// syncAdminRoles 启动时按账号角色修正 casbin 绑定（默认店主由 seed 创建，不经过账号服务）
func (c *Container) syncAdminRoles() {
	admins, err := c.AdminRepo.List()
	if err != nil {
		logger.Warnw("provider_list_admins_failed", "error", err)
		return
	}
	for _, admin := range admins {
		role := service.NormalizeAdminRole(admin.Role)
		if role == "" {
			logger.Warnw("provider_admin_role_unknown", "admin_id", admin.ID, "role", admin.Role)
			continue
		}
		if err := c.AuthzService.SyncAdminRole(admin.ID, role); err != nil {
			logger.Warnw("provider_sync_admin_role_failed", "admin_id", admin.ID, "error", err)
		}
	}
}

// Close 释放容器持有的长连接资源
func (c *Container) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Hub != nil {
		c.Hub.Shutdown(ctx)
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
