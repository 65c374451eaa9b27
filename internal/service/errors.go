package service

import "errors"

// 通用错误
var (
	ErrNotFound    = errors.New("not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidData = errors.New("invalid data")

	ErrDashboardRangeInvalid = errors.New("dashboard range invalid")
)

// 目录相关错误
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("cannot delete category with existing products")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductOutOfStock   = errors.New("product out of stock")
	ErrProductPriceInvalid = errors.New("product price must not be negative")
	ErrProductStockInvalid = errors.New("product stock must not be negative")
	ErrPostNotFound        = errors.New("post not found")
	ErrImportFileInvalid   = errors.New("import file invalid")
)

// 询价相关错误
var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartQuantityInvalid  = errors.New("cart quantity invalid")
	ErrCartBusy             = errors.New("cart is busy")
	ErrEnquiryNotFound      = errors.New("enquiry not found")
	ErrContactNotFound      = errors.New("contact message not found")
	ErrContactStatusInvalid = errors.New("contact status invalid")
)

// 后台账号相关错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailNotAllowed    = errors.New("email not in admin allowlist")
	ErrAdminExists        = errors.New("admin already exists")
	ErrAdminLastOwner     = errors.New("cannot remove the last owner")
	ErrAdminDeleteSelf    = errors.New("cannot delete current admin")
	ErrRoleInvalid        = errors.New("role invalid")
	ErrTokenInvalid       = errors.New("token invalid")
)

// 验证码错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 上传错误
var (
	ErrUploadTooLarge    = errors.New("upload too large")
	ErrUploadTypeInvalid = errors.New("upload type invalid")
)
