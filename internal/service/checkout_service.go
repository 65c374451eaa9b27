package service

import (
	"context"
	"strings"

	"github.com/autoparts-enquiry/internal/cart"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"
)

// EnquiryNotifier 询价单创建后的通知接口
type EnquiryNotifier interface {
	EnquiryCreated(ctx context.Context, enquiry *models.Enquiry)
}

// CheckoutResult 提交结果
type CheckoutResult struct {
	Enquiry     *models.Enquiry `json:"enquiry"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
}

// CheckoutService 询价提交服务
type CheckoutService struct {
	cfg            config.WhatsAppConfig
	enquiryRepo    repository.EnquiryRepository
	settingService *SettingService
	notifier       EnquiryNotifier
}

// NewCheckoutService 创建询价提交服务
func NewCheckoutService(cfg config.WhatsAppConfig, enquiryRepo repository.EnquiryRepository, settingService *SettingService, notifier EnquiryNotifier) *CheckoutService {
	return &CheckoutService{
		cfg:            cfg,
		enquiryRepo:    enquiryRepo,
		settingService: settingService,
		notifier:       notifier,
	}
}

// Checkout 提交询价：落库、生成深链、清空询价车、发出通知
// 落库失败时询价车保持不变
func (s *CheckoutService) Checkout(ctx context.Context, store *cart.Store, customer CustomerInfo) (*CheckoutResult, error) {
	if store == nil || store.IsEmpty() {
		return nil, ErrCartEmpty
	}
	items := store.Items()
	customer = customer.Normalize()
	number, currency := s.resolveWhatsApp()

	message := RenderEnquiryMessage(items, customer, currency)
	enquiry := &models.Enquiry{
		Items:           enquiryItemsFromCart(items),
		Name:            customer.Name,
		Phone:           customer.Phone,
		Location:        customer.Location,
		WhatsAppMessage: message,
	}
	if err := s.enquiryRepo.Create(enquiry); err != nil {
		logger.Errorw("checkout_enquiry_persist_failed", "items", len(items), "error", err)
		return nil, err
	}

	link := BuildWhatsAppURL(s.cfg.BaseURL, number, message)
	store.Clear()
	logger.Infow("checkout_enquiry_created",
		"enquiry_id", enquiry.ID,
		"items", len(items),
		"total_quantity", enquiry.TotalQuantity(),
	)

	if s.notifier != nil {
		s.notifier.EnquiryCreated(ctx, enquiry)
	}

	return &CheckoutResult{
		Enquiry:     enquiry,
		Message:     message,
		WhatsAppURL: link,
	}, nil
}

// resolveWhatsApp 后台站点设置优先，其次配置文件
func (s *CheckoutService) resolveWhatsApp() (string, string) {
	number := s.cfg.Number
	currency := s.cfg.Currency
	if s.settingService == nil {
		return number, currency
	}
	site, err := s.settingService.GetConfig(map[string]interface{}{
		constants.SettingFieldWhatsApp: number,
		constants.SettingFieldCurrency: currency,
	})
	if err != nil {
		logger.Warnw("checkout_site_config_load_failed", "error", err)
		return number, currency
	}
	if v, ok := site[constants.SettingFieldWhatsApp].(string); ok && strings.TrimSpace(v) != "" {
		number = v
	}
	if v, ok := site[constants.SettingFieldCurrency].(string); ok && strings.TrimSpace(v) != "" {
		currency = v
	}
	return number, currency
}

func enquiryItemsFromCart(items []cart.Item) models.EnquiryItems {
	out := make(models.EnquiryItems, 0, len(items))
	for _, item := range items {
		out = append(out, models.EnquiryItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     models.NewMoneyFromDecimal(item.Price),
		})
	}
	return out
}
