package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/provider"
	"github.com/autoparts-enquiry/internal/queue"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/hibiken/asynq"
)

const lowStockDigestLimit = 100

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskEnquiryNotify, c.handleEnquiryNotify)
	mux.HandleFunc(queue.TaskContactNotify, c.handleContactNotify)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
}

func (c *Consumer) handleEnquiryNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_enquiry_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.EnquiryNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_enquiry_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.EnquiryID == 0 {
		logger.Debugw("worker_enquiry_notify_skip_invalid_payload", "enquiry_id", payload.EnquiryID)
		return nil
	}
	enquiry, err := c.EnquiryRepo.GetByID(payload.EnquiryID)
	if err != nil {
		logger.Warnw("worker_enquiry_notify_fetch_failed", "enquiry_id", payload.EnquiryID, "error", err)
		return err
	}
	if enquiry == nil {
		logger.Debugw("worker_enquiry_notify_skip_not_found", "enquiry_id", payload.EnquiryID)
		return nil
	}
	to := c.notifyRecipient()
	if to == "" {
		logger.Debugw("worker_enquiry_notify_skip_empty_receiver", "enquiry_id", enquiry.ID)
		return nil
	}
	if err := c.EmailService.SendEnquiryNotification(to, enquiry); err != nil {
		return handleEmailError("worker_enquiry_notify_send_failed", err, "enquiry_id", enquiry.ID)
	}
	return nil
}

func (c *Consumer) handleContactNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_contact_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.ContactID == 0 {
		logger.Debugw("worker_contact_notify_skip_invalid_payload", "contact_id", payload.ContactID)
		return nil
	}
	message, err := c.ContactRepo.GetByID(payload.ContactID)
	if err != nil {
		logger.Warnw("worker_contact_notify_fetch_failed", "contact_id", payload.ContactID, "error", err)
		return err
	}
	if message == nil {
		logger.Debugw("worker_contact_notify_skip_not_found", "contact_id", payload.ContactID)
		return nil
	}
	to := c.notifyRecipient()
	if to == "" {
		logger.Debugw("worker_contact_notify_skip_empty_receiver", "contact_id", message.ID)
		return nil
	}
	if err := c.EmailService.SendContactNotification(to, message); err != nil {
		return handleEmailError("worker_contact_notify_send_failed", err, "contact_id", message.ID)
	}
	return nil
}

func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.Threshold < 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "threshold", payload.Threshold)
		return nil
	}
	products, err := c.ProductService.ListLowStock(payload.Threshold, lowStockDigestLimit)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_failed", "threshold", payload.Threshold, "error", err)
		return err
	}
	if len(products) == 0 {
		logger.Debugw("worker_low_stock_alert_skip_empty", "threshold", payload.Threshold, "day", payload.Day)
		return nil
	}
	to := c.notifyRecipient()
	if to == "" {
		logger.Debugw("worker_low_stock_alert_skip_empty_receiver", "day", payload.Day)
		return nil
	}
	if err := c.EmailService.SendLowStockDigest(to, payload.Threshold, products); err != nil {
		return handleEmailError("worker_low_stock_alert_send_failed", err, "day", payload.Day)
	}
	logger.Infow("worker_low_stock_alert_sent", "day", payload.Day, "products", len(products))
	return nil
}

func (c *Consumer) notifyRecipient() string {
	if c.EmailService == nil {
		return ""
	}
	return c.EmailService.NotifyRecipient()
}

// handleEmailError 邮件未启用或配置不完整时不重试
func handleEmailError(event string, err error, kv ...interface{}) error {
	if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
		logger.Debugw(event+"_skip_disabled", kv...)
		return nil
	}
	if errors.Is(err, service.ErrInvalidEmail) || errors.Is(err, service.ErrEmailRecipientRejected) {
		logger.Warnw(event, append(kv, "error", err)...)
		return nil
	}
	logger.Warnw(event, append(kv, "error", err)...)
	return err
}
