package public

import (
	"github.com/autoparts-enquiry/internal/constants"
	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系留言请求
type ContactRequest struct {
	Name           string                              `json:"name" binding:"required"`
	Email          string                              `json:"email" binding:"required"`
	Phone          string                              `json:"phone"`
	Subject        string                              `json:"subject" binding:"required"`
	Message        string                              `json:"message" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SubmitContact 提交联系留言
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.contact_fields_required", nil)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneContactSubmit, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	message, err := h.ContactService.Create(c.Request.Context(), service.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondContactCreateError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":         message.ID,
		"status":     message.Status,
		"created_at": message.CreatedAt,
	})
}
