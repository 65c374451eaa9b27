package admin

import (
	"errors"
	"strings"

	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsRequest 更新设置请求
type SettingsRequest struct {
	Key   string                 `json:"key"`
	Value map[string]interface{} `json:"value" binding:"required"`
}

// SettingsEmailTestRequest 测试邮件请求
type SettingsEmailTestRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func settingKeyOrDefault(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		return constants.SettingKeySiteConfig
	}
	return key
}

// GetSettings 获取设置
func (h *Handler) GetSettings(c *gin.Context) {
	key := settingKeyOrDefault(c.Query("key"))
	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	if value == nil {
		value = models.JSON{}
	}
	response.Success(c, gin.H{
		"key":   key,
		"value": value,
	})
}

// UpdateSettings 更新设置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	key := settingKeyOrDefault(req.Key)

	value, err := h.SettingService.Update(key, req.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidData) {
			respondError(c, response.CodeBadRequest, "error.setting_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.settings_save_failed", err)
		return
	}
	if key == constants.SettingKeySiteConfig {
		h.invalidatePublicConfig(c)
	}
	response.Success(c, gin.H{
		"key":   key,
		"value": value,
	})
}

// SendSettingsTestEmail 发送测试邮件，收件人默认当前管理员
func (h *Handler) SendSettingsTestEmail(c *gin.Context) {
	var req SettingsEmailTestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	to := strings.TrimSpace(req.ToEmail)
	if to == "" {
		to = h.EmailService.NotifyRecipient()
	}
	if to == "" {
		to = getAdminEmail(c)
	}
	if to == "" {
		respondError(c, response.CodeBadRequest, "error.email_recipient_not_found", nil)
		return
	}

	if err := h.EmailService.SendCustomEmail(to, req.Subject, req.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			respondError(c, response.CodeBadRequest, "error.email_service_not_configured", nil)
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrEmailRecipientRejected):
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.email_send_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"to_email": to})
}

func (h *Handler) invalidatePublicConfig(c *gin.Context) {
	if !cache.Enabled() {
		return
	}
	if err := cache.Del(c.Request.Context(), publicConfigCacheKey); err != nil {
		requestLog(c).Warnw("admin_public_config_cache_invalidate_failed", "error", err)
	}
}
