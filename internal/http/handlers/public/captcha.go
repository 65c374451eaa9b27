package public

import (
	"errors"
	"strings"

	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
// 传入 scene 且该场景未开启时返回 required=false，前端据此隐藏验证码输入框
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}
	if scene := strings.TrimSpace(c.Query("scene")); scene != "" && !h.CaptchaService.IsSceneEnabled(scene) {
		response.Success(c, gin.H{"required": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, gin.H{
		"required":       true,
		"captcha_id":     challenge.CaptchaID,
		"image_base64":   challenge.ImageBase64,
		"expire_seconds": challenge.ExpireSeconds,
	})
}
