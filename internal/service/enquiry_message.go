package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/autoparts-enquiry/internal/cart"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency 默认币种
	DefaultCurrency = "KES"
	// DefaultWhatsAppBaseURL 默认 WhatsApp 跳转域名
	DefaultWhatsAppBaseURL = "https://wa.me"

	notProvided = "Not provided"
)

// CustomerInfo 询价客户信息（均为可选）
type CustomerInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Normalize 去除首尾空白
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		Name:     strings.TrimSpace(c.Name),
		Phone:    strings.TrimSpace(c.Phone),
		Location: strings.TrimSpace(c.Location),
	}
}

// RenderEnquiryMessage 渲染询价消息正文，原样交给聊天会话，不做机器解析，需逐字节保持稳定
func RenderEnquiryMessage(items []cart.Item, customer CustomerInfo, currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	customer = customer.Normalize()

	var b strings.Builder
	b.WriteString("*New Enquiry Request*\n\n")
	b.WriteString("*Customer Details:*\n")
	b.WriteString("Name: " + orNotProvided(customer.Name) + "\n")
	b.WriteString("Phone: " + orNotProvided(customer.Phone) + "\n")
	b.WriteString("Location: " + orNotProvided(customer.Location) + "\n\n")
	b.WriteString("*Items:*\n")

	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + item.Title + "\n")
		b.WriteString("   Quantity: " + strconv.Itoa(item.Quantity) + "\n")
		b.WriteString("   Price: " + currency + " " + FormatAmount(item.Price) + "\n")
		b.WriteString("   Subtotal: " + currency + " " + FormatAmount(item.Subtotal()))
	}

	b.WriteString("\n\n*Total: " + currency + " " + FormatAmount(cart.SumSubtotals(items)) + "*")
	return b.String()
}

func orNotProvided(value string) string {
	if value == "" {
		return notProvided
	}
	return value
}

// FormatAmount 按 en-US 习惯格式化数字：千分位逗号，最多 3 位小数，去掉末尾 0
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(3)
	negative := rounded.IsNegative()
	raw := rounded.Abs().String()

	intPart, fracPart := raw, ""
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		intPart, fracPart = raw[:idx], strings.TrimRight(raw[idx+1:], "0")
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// BuildWhatsAppURL 生成 WhatsApp 深链，号码只保留数字
func BuildWhatsAppURL(baseURL, number, message string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultWhatsAppBaseURL
	}
	return baseURL + "/" + digitsOnly(number) + "?text=" + EncodeURIComponent(message)
}

var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent 与浏览器 encodeURIComponent 结果一致（保留 A-Z a-z 0-9 - _ . ! ~ * ' ( )）
func EncodeURIComponent(value string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(value))
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
