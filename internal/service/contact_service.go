package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"
)

// ContactNotifier 留言创建后的通知接口
type ContactNotifier interface {
	ContactCreated(ctx context.Context, message *models.ContactMessage)
}

// ContactService 联系留言服务
type ContactService struct {
	repo     repository.ContactRepository
	notifier ContactNotifier
}

// NewContactService 创建联系留言服务
func NewContactService(repo repository.ContactRepository, notifier ContactNotifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

// CreateContactInput 提交留言输入
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var allowedContactStatuses = map[string]struct{}{
	constants.ContactStatusNew:       {},
	constants.ContactStatusRead:      {},
	constants.ContactStatusResponded: {},
}

// Create 提交留言，状态初始为 new
func (s *ContactService) Create(ctx context.Context, input CreateContactInput) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  constants.ContactStatusNew,
	}
	if message.Name == "" || message.Email == "" || message.Subject == "" || message.Message == "" {
		return nil, ErrInvalidData
	}
	if _, err := mail.ParseAddress(message.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := s.repo.Create(message); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ContactCreated(ctx, message)
	}
	return message, nil
}

// List 后台留言列表，可按状态过滤
func (s *ContactService) List(status string, page, pageSize int) ([]models.ContactMessage, int64, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" {
		if _, ok := allowedContactStatuses[status]; !ok {
			return nil, 0, ErrContactStatusInvalid
		}
	}
	return s.repo.List(repository.ContactListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   status,
	})
}

// GetByID 获取留言
func (s *ContactService) GetByID(id uint) (*models.ContactMessage, error) {
	message, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrContactNotFound
	}
	return message, nil
}

// UpdateStatus 更新留言状态（不限制流转方向）
func (s *ContactService) UpdateStatus(id uint, status string) (*models.ContactMessage, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := allowedContactStatuses[status]; !ok {
		return nil, ErrContactStatusInvalid
	}
	// 状态未变化时 MySQL 返回 0 行，因此以重新查询结果判断是否存在
	if _, err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete 删除留言
func (s *ContactService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
