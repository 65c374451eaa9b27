package models

import (
	"strings"

	"github.com/autoparts-enquiry/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultOwnerEmail    = "owner@example.com"
	defaultOwnerPassword = "admin123"
)

// InitDefaultAdmin 首次启动时创建店主账号，已有账号时跳过
func InitDefaultAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultOwnerEmail
	}
	usingDefaultPassword := password == ""
	if usingDefaultPassword {
		password = defaultOwnerPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "owner",
	}
	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	if usingDefaultPassword {
		logger.Warnw("default_owner_created_with_default_password", "email", email)
		logger.Warnw("default_owner_password_change_required", "email", email)
	} else {
		logger.Infow("default_owner_created", "email", email)
	}
	return nil
}
