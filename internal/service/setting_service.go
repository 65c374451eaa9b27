package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetConfig 获取站点配置（合并默认值）
func (s *SettingService) GetConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		data[k] = v
	}
	if s == nil || s.repo == nil {
		return data, nil
	}

	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}
	for k, v := range setting.ValueJSON {
		if text, ok := v.(string); ok && strings.TrimSpace(text) == "" {
			continue
		}
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized, err := normalizeSettingValueByKey(key, value)
	if err != nil {
		return nil, err
	}
	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetLowStockThreshold 获取低库存阈值，未设置时返回默认值
func (s *SettingService) GetLowStockThreshold(defaultValue int) (int, error) {
	if s == nil || s.repo == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyDashboardConfig)
	if err != nil {
		return defaultValue, err
	}
	raw, ok := value[constants.SettingFieldLowStock]
	if !ok {
		return defaultValue, nil
	}
	threshold, err := parseSettingInt(raw)
	if err != nil || threshold < 0 {
		return defaultValue, nil
	}
	return threshold, nil
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.Atoi(trimmed)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
