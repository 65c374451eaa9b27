package public

import (
	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

var cartAddErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductOutOfStock, Code: response.CodeBadRequest, Key: "error.product_out_of_stock"},
	{Target: service.ErrCartBusy, Code: response.CodeConflict, Key: "error.cart_busy"},
}

var cartUpdateErrorRules = []mappedHandlerError{
	{Target: service.ErrCartBusy, Code: response.CodeConflict, Key: "error.cart_busy"},
}

var checkoutErrorRules = []mappedHandlerError{
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrCartBusy, Code: response.CodeConflict, Key: "error.cart_busy"},
}

var contactCreateErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidData, Code: response.CodeBadRequest, Key: "error.contact_fields_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
}

func respondCaptchaError(c *gin.Context, err error) {
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartAddErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondCartUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartUpdateErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.checkout_failed")
}

func respondContactCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, contactCreateErrorRules, response.CodeInternal, "error.contact_submit_failed")
}

var categoryLookupErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
}

var productLookupErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var postLookupErrorRules = []mappedHandlerError{
	{Target: service.ErrPostNotFound, Code: response.CodeNotFound, Key: "error.post_not_found"},
}
