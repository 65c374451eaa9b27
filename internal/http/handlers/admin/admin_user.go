package admin

import (
	"errors"

	"github.com/autoparts-enquiry/internal/http/response"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest 创建后台账号请求
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// GetAdminUsers 获取后台账号列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	admins, err := h.AdminUserService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdminUser 创建后台账号（邮箱必须在白名单内）
func (h *Handler) CreateAdminUser(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminUserService.Create(service.CreateAdminInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		case errors.Is(err, service.ErrEmailNotAllowed):
			respondError(c, response.CodeForbidden, "error.email_not_allowed", nil)
		case errors.Is(err, service.ErrRoleInvalid):
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, response.CodeConflict, "error.admin_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPassword(c, err)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_user_created", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, admin)
}

// DeleteAdminUser 删除后台账号
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	currentID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.AdminUserService.Delete(currentID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminDeleteSelf):
			respondError(c, response.CodeBadRequest, "error.admin_delete_self", nil)
		case errors.Is(err, service.ErrAdminLastOwner):
			respondError(c, response.CodeBadRequest, "error.admin_last_owner", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.delete_failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_user_deleted", "admin_id", id, "operator_id", currentID)
	response.Success(c, nil)
}
