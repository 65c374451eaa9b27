package queue

import (
	"encoding/json"

	"github.com/autoparts-enquiry/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskEnquiryNotify 新询价单通知任务
	TaskEnquiryNotify = constants.TaskEnquiryNotify
	// TaskContactNotify 新留言通知任务
	TaskContactNotify = constants.TaskContactNotify
	// TaskLowStockAlert 低库存提醒任务
	TaskLowStockAlert = constants.TaskLowStockAlert
)

// EnquiryNotifyPayload 询价单通知任务载荷
type EnquiryNotifyPayload struct {
	EnquiryID uint `json:"enquiry_id"`
}

// ContactNotifyPayload 留言通知任务载荷
type ContactNotifyPayload struct {
	ContactID uint `json:"contact_id"`
}

// LowStockAlertPayload 低库存提醒任务载荷
type LowStockAlertPayload struct {
	Threshold int    `json:"threshold"`
	Day       string `json:"day"`
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

// NewEnquiryNotifyTask 创建询价单通知任务
func NewEnquiryNotifyTask(payload EnquiryNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(TaskEnquiryNotify, payload)
}

// NewContactNotifyTask 创建留言通知任务
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(TaskContactNotify, payload)
}

// NewLowStockAlertTask 创建低库存提醒任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	return newJSONTask(TaskLowStockAlert, payload)
}
