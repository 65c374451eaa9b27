package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEN 英文（默认）
	LocaleEN = "en-US"
	// LocaleSW 斯瓦希里语
	LocaleSW = "sw-KE"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleEN
)

var catalogs = map[string]map[string]string{
	LocaleEN: messagesEN,
	LocaleSW: messagesSW,
}

// NormalizeLocale 归一化语言标识，未识别时返回默认语言
func NormalizeLocale(raw string) string {
	l := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(l, "sw"):
		return LocaleSW
	default:
		return DefaultLocale
	}
}

// ResolveLocale 从请求中解析语言（query lang 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	first := strings.Split(header, ",")[0]
	first = strings.Split(first, ";")[0]
	return NormalizeLocale(first)
}

// T 翻译文案，缺失时回退默认语言，仍缺失则返回 key
func T(locale, key string) string {
	if msgs, ok := catalogs[NormalizeLocale(locale)]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
