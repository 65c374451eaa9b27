package i18n

var messagesEN = map[string]string{
	"error.bad_request":                  "Invalid request parameters",
	"error.unauthorized":                 "Please log in first",
	"error.forbidden":                    "You do not have permission to perform this action",
	"error.not_found":                    "Resource not found",
	"error.too_many_requests":            "Too many requests, please try again later",
	"error.internal":                     "Internal server error",
	"error.token_invalid":                "Invalid or expired token",
	"error.login_invalid":                "Incorrect email or password",
	"error.email_not_allowed":            "This email is not allowed to access the admin area",
	"error.password_invalid":             "Current password is incorrect",
	"error.password_min_length":          "Password must be at least %d characters",
	"error.password_require_upper":       "Password must contain an uppercase letter",
	"error.password_require_lower":       "Password must contain a lowercase letter",
	"error.password_require_number":      "Password must contain a number",
	"error.password_require_special":     "Password must contain a special character",
	"error.admin_id_invalid":             "Invalid admin id",
	"error.admin_id_type_invalid":        "Admin id has an unexpected type",
	"error.admin_exists":                 "An admin with this email already exists",
	"error.admin_last_owner":             "The last owner account cannot be removed",
	"error.admin_delete_self":            "You cannot delete your own account",
	"error.role_invalid":                 "Unknown role",
	"error.slug_exists":                  "Slug already exists",
	"error.category_not_found":           "Category not found",
	"error.category_in_use":              "Cannot delete category with existing products",
	"error.product_not_found":            "Product not found",
	"error.product_out_of_stock":         "This product is out of stock",
	"error.product_price_invalid":        "Price must not be negative",
	"error.product_stock_invalid":        "Stock must not be negative",
	"error.post_not_found":               "Post not found",
	"error.enquiry_not_found":            "Enquiry not found",
	"error.contact_not_found":            "Message not found",
	"error.contact_status_invalid":       "Unknown message status",
	"error.cart_empty":                   "Your enquiry cart is empty",
	"error.cart_quantity_invalid":        "Quantity must be a whole number",
	"error.cart_busy":                    "Your enquiry cart is being updated, please try again",
	"error.checkout_failed":              "Failed to submit enquiry, please try again",
	"error.captcha_required":             "Please complete the captcha",
	"error.captcha_invalid":              "Captcha is incorrect",
	"error.captcha_config_invalid":       "Captcha is not configured",
	"error.upload_failed":                "Upload failed",
	"error.upload_type_invalid":          "File type is not allowed",
	"error.upload_too_large":             "File is too large",
	"error.import_failed":                "Import failed",
	"error.import_file_invalid":          "The spreadsheet could not be read",
	"error.export_failed":                "Export failed",
	"error.setting_invalid":              "Invalid settings",
	"email.enquiry_notify.subject":       "New enquiry #%d",
	"email.enquiry_notify.body":          "A new enquiry was submitted.\n\n%s",
	"email.contact_notify.subject":       "New contact message: %s",
	"email.contact_notify.body":          "From: %s <%s>\nPhone: %s\n\n%s",
	"email.low_stock.subject":            "Low stock digest (%d products)",
	"email.low_stock.body":               "The following products are at or below the stock threshold of %d:\n\n%s",
	"email.low_stock.line":               "- %s (stock: %d)",
	"error.admin_not_found":              "Admin account not found",
	"error.auth_header_missing":          "Authorization header is missing",
	"error.auth_header_invalid":          "Authorization header format is invalid",
	"error.jwt_secret_missing":           "JWT secret is not configured",
	"error.token_revoked":                "Your session has ended, please log in again",
	"error.login_failed":                 "Login failed, please try again",
	"error.login_too_many":               "Too many login attempts, try again in %d seconds",
	"error.rate_limited":                 "Too many requests, try again in %d seconds",
	"error.rate_limit_unavailable":       "Rate limiting is temporarily unavailable",
	"error.password_weak":                "Password does not meet the security policy",
	"error.email_invalid":                "Invalid email address",
	"error.captcha_unavailable":          "Captcha is not enabled",
	"error.captcha_generate_failed":      "Failed to generate captcha",
	"error.captcha_verify_failed":        "Failed to verify captcha",
	"error.config_fetch_failed":          "Failed to load site configuration",
	"error.category_fetch_failed":        "Failed to load categories",
	"error.category_create_failed":       "Failed to create category",
	"error.category_update_failed":       "Failed to update category",
	"error.category_delete_failed":       "Failed to delete category",
	"error.product_fetch_failed":         "Failed to load products",
	"error.product_create_failed":        "Failed to create product",
	"error.product_update_failed":        "Failed to update product",
	"error.product_delete_failed":        "Failed to delete product",
	"error.post_fetch_failed":            "Failed to load posts",
	"error.post_create_failed":           "Failed to create post",
	"error.post_update_failed":           "Failed to update post",
	"error.post_delete_failed":           "Failed to delete post",
	"error.search_failed":                "Search failed, please try again",
	"error.cart_update_failed":           "Failed to update enquiry cart",
	"error.contact_fields_required":      "Name, email, subject and message are required",
	"error.contact_submit_failed":        "Failed to send your message, please try again",
	"error.contact_fetch_failed":         "Failed to load contact messages",
	"error.enquiry_fetch_failed":         "Failed to load enquiries",
	"error.dashboard_fetch_failed":       "Failed to load dashboard data",
	"error.settings_fetch_failed":        "Failed to load settings",
	"error.settings_save_failed":         "Failed to save settings",
	"error.email_service_not_configured": "Email service is not configured",
	"error.email_recipient_not_found":    "No recipient email address available",
	"error.email_send_failed":            "Failed to send email",
	"error.file_missing":                 "Please choose a file to upload",
	"error.fetch_failed":                 "Failed to load data",
	"error.save_failed":                  "Failed to save changes",
	"error.delete_failed":                "Failed to delete",
}
