package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/provider"
	"github.com/autoparts-enquiry/internal/repository"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupCartHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	productRepo := repository.NewProductRepository(db)
	whatsapp := config.WhatsAppConfig{Number: "+254 700 000 000", Currency: "KES"}
	container := &provider.Container{
		ProductRepo:     productRepo,
		CartService:     service.NewCartService(config.CartConfig{}, productRepo),
		CheckoutService: service.NewCheckoutService(whatsapp, repository.NewEnquiryRepository(db), nil, nil),
	}
	return New(container), db
}

func seedCartProduct(t *testing.T, db *gorm.DB, slug string, stock int) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Brakes " + slug, Slug: "brakes-" + slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Title:      "Brake Pad " + slug,
		Slug:       slug,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(1500)),
		Stock:      stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func performCartRequest(h gin.HandlerFunc, method, target, body, session string, params ...gin.Param) (*httptest.ResponseRecorder, cartEnvelope) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(constants.CartSessionHeader, session)
	}
	c.Request = req
	c.Params = params
	h(c)

	var env cartEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCartSessionHeaderIssuedWhenMissing(t *testing.T) {
	h, _ := setupCartHandler(t)

	w, env := performCartRequest(h.GetCart, http.MethodGet, "/api/v1/public/cart", "", "")
	if env.StatusCode != 0 {
		t.Fatalf("unexpected status code: %d", env.StatusCode)
	}
	if w.Header().Get(constants.CartSessionHeader) == "" {
		t.Fatalf("expected a cart session header to be issued")
	}

	w, _ = performCartRequest(h.GetCart, http.MethodGet, "/api/v1/public/cart", "", "session-abc")
	if got := w.Header().Get(constants.CartSessionHeader); got != "session-abc" {
		t.Fatalf("expected client session to be echoed, got %q", got)
	}
}

func TestCartAddAndCheckout(t *testing.T) {
	h, db := setupCartHandler(t)
	product := seedCartProduct(t, db, "front-pad", 5)
	session := "checkout-session"

	body := fmt.Sprintf(`{"product_id":%d}`, product.ID)
	performCartRequest(h.AddCartItem, http.MethodPost, "/api/v1/public/cart/items", body, session)
	_, env := performCartRequest(h.AddCartItem, http.MethodPost, "/api/v1/public/cart/items", body, session)
	if env.StatusCode != 0 {
		t.Fatalf("add item failed: %+v", env)
	}
	var view service.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode cart view failed: %v", err)
	}
	if view.TotalItems != 2 || len(view.Items) != 1 || !view.TotalPrice.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected cart view: %+v", view)
	}

	_, env = performCartRequest(h.Checkout, http.MethodPost, "/api/v1/public/cart/checkout", `{"name":"Wanjiru","location":"Nairobi"}`, session)
	if env.StatusCode != 0 {
		t.Fatalf("checkout failed: %+v", env)
	}
	var result CheckoutResponse
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode checkout failed: %v", err)
	}
	if result.EnquiryID == 0 || !strings.Contains(result.WhatsAppURL, "/254700000000?text=") {
		t.Fatalf("unexpected checkout result: %+v", result)
	}
	if result.Cart.TotalItems != 0 {
		t.Fatalf("cart should be cleared after checkout, got %+v", result.Cart)
	}

	var count int64
	if err := db.Model(&models.Enquiry{}).Count(&count).Error; err != nil {
		t.Fatalf("count enquiries failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 enquiry, got %d", count)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	h, db := setupCartHandler(t)

	_, env := performCartRequest(h.Checkout, http.MethodPost, "/api/v1/public/cart/checkout", "", "empty-session")
	if env.StatusCode != 400 {
		t.Fatalf("expected 400 for empty cart, got %+v", env)
	}
	var count int64
	db.Model(&models.Enquiry{}).Count(&count)
	if count != 0 {
		t.Fatalf("empty checkout must not persist an enquiry, got %d", count)
	}
}

func TestCartAddRejectsUnavailableProducts(t *testing.T) {
	h, db := setupCartHandler(t)
	soldOut := seedCartProduct(t, db, "sold-out", 0)

	_, env := performCartRequest(h.AddCartItem, http.MethodPost, "/api/v1/public/cart/items", fmt.Sprintf(`{"product_id":%d}`, soldOut.ID), "s1")
	if env.StatusCode != 400 {
		t.Fatalf("out of stock product want 400, got %+v", env)
	}
	_, env = performCartRequest(h.AddCartItem, http.MethodPost, "/api/v1/public/cart/items", `{"product_id":9999}`, "s1")
	if env.StatusCode != 404 {
		t.Fatalf("missing product want 404, got %+v", env)
	}
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	h, db := setupCartHandler(t)
	product := seedCartProduct(t, db, "rotor", 3)
	session := "update-session"
	performCartRequest(h.AddCartItem, http.MethodPost, "/api/v1/public/cart/items", fmt.Sprintf(`{"product_id":%d}`, product.ID), session)

	param := gin.Param{Key: "product_id", Value: fmt.Sprint(product.ID)}
	_, env := performCartRequest(h.UpdateCartItem, http.MethodPut, "/api/v1/public/cart/items/"+param.Value, `{"quantity":0}`, session, param)
	if env.StatusCode != 0 {
		t.Fatalf("update failed: %+v", env)
	}
	var view service.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("quantity 0 should remove the item, got %+v", view)
	}

	_, env = performCartRequest(h.UpdateCartItem, http.MethodPut, "/api/v1/public/cart/items/"+param.Value, `{}`, session, param)
	if env.StatusCode != 400 {
		t.Fatalf("missing quantity want 400, got %+v", env)
	}
}
