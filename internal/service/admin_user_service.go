package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"
)

// RoleBinder 角色绑定接口（由 casbin 实现）
type RoleBinder interface {
	SetAdminRoles(adminID uint, roles []string) error
	RemoveAdmin(adminID uint) error
}

// AdminUserService 后台账号管理服务（仅店主可用）
type AdminUserService struct {
	adminRepo   repository.AdminRepository
	authService *AuthService
	roles       RoleBinder
}

// NewAdminUserService 创建后台账号管理服务
func NewAdminUserService(adminRepo repository.AdminRepository, authService *AuthService, roles RoleBinder) *AdminUserService {
	return &AdminUserService{adminRepo: adminRepo, authService: authService, roles: roles}
}

// CreateAdminInput 创建后台账号输入
type CreateAdminInput struct {
	Email    string
	Password string
	Role     string
}

// NormalizeAdminRole 归一化角色，未知角色返回空
func NormalizeAdminRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case constants.AdminRoleOwner:
		return constants.AdminRoleOwner
	case "", constants.AdminRoleStaff:
		return constants.AdminRoleStaff
	default:
		return ""
	}
}

// List 账号列表
func (s *AdminUserService) List() ([]models.Admin, error) {
	return s.adminRepo.List()
}

// Create 创建账号，邮箱需在白名单内
func (s *AdminUserService) Create(input CreateAdminInput) (*models.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !s.authService.IsEmailAllowed(email) {
		return nil, ErrEmailNotAllowed
	}
	role := NormalizeAdminRole(input.Role)
	if role == "" {
		return nil, ErrRoleInvalid
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	existing, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminExists
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Email: email, PasswordHash: hash, Role: role}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	if s.roles != nil {
		if err := s.roles.SetAdminRoles(admin.ID, []string{role}); err != nil {
			return nil, err
		}
	}
	return admin, nil
}

// Delete 删除账号，不能删除自己或最后一个店主
func (s *AdminUserService) Delete(currentAdminID, id uint) error {
	if currentAdminID == id {
		return ErrAdminDeleteSelf
	}
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if admin.IsOwner() {
		owners, err := s.adminRepo.CountByRole(constants.AdminRoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrAdminLastOwner
		}
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}
	if s.roles != nil {
		if err := s.roles.RemoveAdmin(id); err != nil {
			return err
		}
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	return nil
}
