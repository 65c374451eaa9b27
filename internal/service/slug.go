package service

import (
	"strings"
	"unicode"
)

// slugify 生成 URL 友好的标识：小写字母数字，其他字符折叠为单个连字符
func slugify(raw string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func resolveSlug(slug, fallback string) string {
	if s := slugify(slug); s != "" {
		return s
	}
	return slugify(fallback)
}
