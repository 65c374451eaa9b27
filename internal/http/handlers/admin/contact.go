package admin

import (
	"errors"

	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"
	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactStatusRequest 更新留言状态请求
type ContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetContacts 获取留言列表
func (h *Handler) GetContacts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	messages, total, err := h.ContactService.List(c.Query("status"), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrContactStatusInvalid) {
			respondError(c, response.CodeBadRequest, "error.contact_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.contact_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, messages, handlershared.BuildPagination(page, pageSize, total))
}

// GetContact 获取留言详情
func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	message, err := h.ContactService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, response.CodeNotFound, "error.contact_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.contact_fetch_failed", err)
		return
	}
	response.Success(c, message)
}

// UpdateContactStatus 更新留言状态
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	message, err := h.ContactService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, response.CodeNotFound, "error.contact_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrContactStatusInvalid) {
			respondError(c, response.CodeBadRequest, "error.contact_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, message)
}

// DeleteContact 删除留言
func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ContactService.Delete(id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, response.CodeNotFound, "error.contact_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.delete_failed", err)
		return
	}
	response.Success(c, nil)
}
