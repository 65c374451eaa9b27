package public

import (
	"github.com/autoparts-enquiry/internal/cart"
	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入询价车请求
type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartQuantityRequest 设置数量请求，数量小于等于 0 时移除条目
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CheckoutRequest 提交询价请求，客户信息均为可选
type CheckoutRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// CheckoutResponse 提交询价响应
type CheckoutResponse struct {
	EnquiryID   uint             `json:"enquiry_id"`
	Message     string           `json:"message"`
	WhatsAppURL string           `json:"whatsapp_url"`
	Cart        service.CartView `json:"cart"`
}

// GetCart 获取询价车
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, h.CartService.View(resolveCartSession(c)))
}

// AddCartItem 加入询价车，已在车内时数量加一
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CartService.AddItem(resolveCartSession(c), req.ProductID)
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 设置条目数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.cart_quantity_invalid", nil)
		return
	}
	view, err := h.CartService.UpdateQuantity(resolveCartSession(c), productID, *req.Quantity)
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除条目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(resolveCartSession(c), productID)
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空询价车
func (h *Handler) ClearCart(c *gin.Context) {
	view, err := h.CartService.Clear(resolveCartSession(c))
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

// Checkout 提交询价并返回 WhatsApp 跳转链接
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
	}

	session := resolveCartSession(c)
	customer := service.CustomerInfo{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	}
	var result *service.CheckoutResult
	view, err := h.CartService.WithCart(session, func(store *cart.Store) error {
		var checkoutErr error
		result, checkoutErr = h.CheckoutService.Checkout(c.Request.Context(), store, customer)
		return checkoutErr
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	requestLog(c).Infow("checkout_enquiry_created", "enquiry_id", result.Enquiry.ID)
	response.Success(c, CheckoutResponse{
		EnquiryID:   result.Enquiry.ID,
		Message:     result.Message,
		WhatsAppURL: result.WhatsAppURL,
		Cart:        view,
	})
}
