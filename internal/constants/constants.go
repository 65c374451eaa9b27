package constants

// 联系留言状态常量（约定单向流转 new → read → responded，不强制）
const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
)

// 后台角色常量
const (
	AdminRoleOwner = "owner"
	AdminRoleStaff = "staff"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneAdminLogin    = "admin_login"
	CaptchaSceneContactSubmit = "contact_submit"
)

// 上传场景常量
const (
	UploadSceneProduct  = "product"
	UploadSceneCategory = "category"
	UploadScenePost     = "post"
	UploadSceneCommon   = "common"
)

// 异步队列与任务常量
const (
	QueueDefault      = "default"
	QueueCritical     = "critical"
	TaskEnquiryNotify = "enquiry:notify"
	TaskContactNotify = "contact:notify"
	TaskLowStockAlert = "stock:low_alert"
)

// 站点设置键常量
const (
	SettingKeySiteConfig      = "site_config"
	SettingKeyDashboardConfig = "dashboard_config"
	SettingFieldSiteName      = "site_name"
	SettingFieldCurrency      = "currency"
	SettingFieldWhatsApp      = "whatsapp_number"
	SettingFieldContactEmail  = "contact_email"
	SettingFieldLowStock      = "low_stock_threshold"
)

// 询价车会话常量
const (
	CartSessionHeader = "X-Cart-Session"
)

// 实时推送事件类型
const (
	RealtimeEventEnquiryCreated = "enquiry.created"
	RealtimeEventContactCreated = "contact.created"
)
