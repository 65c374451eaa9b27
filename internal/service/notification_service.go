package service

import (
	"context"

	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/queue"
	"github.com/autoparts-enquiry/internal/realtime"
)

// NotificationService 运营通知分发：实时推送后台 + 异步邮件
type NotificationService struct {
	queue *queue.Client
	hub   *realtime.Hub
	email *EmailService
}

// NewNotificationService 创建通知服务
func NewNotificationService(queueClient *queue.Client, hub *realtime.Hub, email *EmailService) *NotificationService {
	return &NotificationService{
		queue: queueClient,
		hub:   hub,
		email: email,
	}
}

// EnquiryCreated 新询价单通知，失败只记录日志
func (s *NotificationService) EnquiryCreated(_ context.Context, enquiry *models.Enquiry) {
	if s == nil || enquiry == nil {
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(constants.RealtimeEventEnquiryCreated, map[string]interface{}{
			"id":             enquiry.ID,
			"name":           enquiry.Name,
			"total_quantity": enquiry.TotalQuantity(),
			"created_at":     enquiry.CreatedAt,
		})
	}

	if s.queue != nil && s.queue.Enabled() {
		if err := s.queue.EnqueueEnquiryNotify(queue.EnquiryNotifyPayload{EnquiryID: enquiry.ID}); err != nil {
			logger.Warnw("notification_enquiry_enqueue_failed", "enquiry_id", enquiry.ID, "error", err)
		}
		return
	}
	s.sendDirect("enquiry", enquiry.ID, func(to string) error {
		return s.email.SendEnquiryNotification(to, enquiry)
	})
}

// ContactCreated 新留言通知，失败只记录日志
func (s *NotificationService) ContactCreated(_ context.Context, message *models.ContactMessage) {
	if s == nil || message == nil {
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(constants.RealtimeEventContactCreated, map[string]interface{}{
			"id":         message.ID,
			"name":       message.Name,
			"subject":    message.Subject,
			"created_at": message.CreatedAt,
		})
	}

	if s.queue != nil && s.queue.Enabled() {
		if err := s.queue.EnqueueContactNotify(queue.ContactNotifyPayload{ContactID: message.ID}); err != nil {
			logger.Warnw("notification_contact_enqueue_failed", "contact_id", message.ID, "error", err)
		}
		return
	}
	s.sendDirect("contact", message.ID, func(to string) error {
		return s.email.SendContactNotification(to, message)
	})
}

// sendDirect 队列未启用时在后台直接发送邮件
func (s *NotificationService) sendDirect(kind string, id uint, send func(to string) error) {
	if s.email == nil {
		return
	}
	to := s.email.NotifyRecipient()
	if to == "" {
		return
	}
	go func() {
		if err := send(to); err != nil {
			logger.Warnw("notification_email_send_failed", "kind", kind, "id", id, "error", err)
		}
	}()
}
