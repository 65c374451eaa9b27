package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
)

const settingTextMaxRunes = 500

// normalizeSettingValueByKey 按设置键执行归一化，避免非法值入库。
func normalizeSettingValueByKey(key string, value map[string]interface{}) (models.JSON, error) {
	switch key {
	case constants.SettingKeySiteConfig:
		return normalizeSiteSetting(value)
	case constants.SettingKeyDashboardConfig:
		return normalizeDashboardSetting(value)
	default:
		return nil, fmt.Errorf("%w: unknown setting key %s", ErrInvalidData, key)
	}
}

// normalizeSiteSetting 归一化站点配置（店名、WhatsApp 号码、币种、联系邮箱）。
func normalizeSiteSetting(value map[string]interface{}) (models.JSON, error) {
	normalized := make(models.JSON, 4)
	normalized[constants.SettingFieldSiteName] = normalizeSettingText(value[constants.SettingFieldSiteName])
	normalized[constants.SettingFieldWhatsApp] = digitsOnly(normalizeSettingText(value[constants.SettingFieldWhatsApp]))
	normalized[constants.SettingFieldCurrency] = strings.ToUpper(normalizeSettingText(value[constants.SettingFieldCurrency]))

	email := normalizeSettingText(value[constants.SettingFieldContactEmail])
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: contact email", ErrInvalidData)
		}
	}
	normalized[constants.SettingFieldContactEmail] = email
	return normalized, nil
}

func normalizeDashboardSetting(value map[string]interface{}) (models.JSON, error) {
	threshold := 10
	if raw, ok := value[constants.SettingFieldLowStock]; ok {
		parsed, err := parseSettingInt(raw)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%w: low stock threshold", ErrInvalidData)
		}
		threshold = parsed
	}
	return models.JSON{constants.SettingFieldLowStock: threshold}, nil
}

func normalizeSettingText(raw interface{}) string {
	text, ok := raw.(string)
	if !ok {
		return ""
	}
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > settingTextMaxRunes {
		text = string(runes[:settingTextMaxRunes])
	}
	return text
}
