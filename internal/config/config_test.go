package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{
		Admin: AdminConfig{AllowedEmails: []string{" Owner@Shop.co.ke , staff@shop.co.ke", ""}},
		WhatsApp: WhatsAppConfig{
			BaseURL: "https://wa.me/",
		},
		Dashboard: DashboardConfig{LowStockThreshold: -1},
	}
	cfg.normalize()

	if cfg.WhatsApp.Currency != "KES" {
		t.Fatalf("currency want KES got %s", cfg.WhatsApp.Currency)
	}
	if cfg.WhatsApp.BaseURL != "https://wa.me" {
		t.Fatalf("base url should drop trailing slash: %s", cfg.WhatsApp.BaseURL)
	}
	if cfg.Search.ModalLimit != 20 || cfg.Search.PageLimit != 50 || cfg.Search.MaxLimit != 50 {
		t.Fatalf("unexpected search limits: %+v", cfg.Search)
	}
	if cfg.Dashboard.LowStockThreshold != 10 {
		t.Fatalf("negative threshold should reset to 10, got %d", cfg.Dashboard.LowStockThreshold)
	}
	if len(cfg.Admin.AllowedEmails) != 2 || cfg.Admin.AllowedEmails[0] != "owner@shop.co.ke" {
		t.Fatalf("unexpected allowlist: %v", cfg.Admin.AllowedEmails)
	}
}

func TestIsEmailAllowed(t *testing.T) {
	open := AdminConfig{}
	if !open.IsEmailAllowed("anyone@example.com") {
		t.Fatalf("empty allowlist should allow everyone")
	}
	restricted := AdminConfig{AllowedEmails: []string{"owner@shop.co.ke"}}
	if !restricted.IsEmailAllowed(" OWNER@shop.co.ke ") {
		t.Fatalf("allowlist match should ignore case and spaces")
	}
	if restricted.IsEmailAllowed("intruder@example.com") {
		t.Fatalf("unlisted email should be rejected")
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.WhatsApp.Number != "254708328905" {
		t.Fatalf("unexpected default whatsapp number: %s", cfg.WhatsApp.Number)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Storage.Driver != "local" {
		t.Fatalf("unexpected default drivers: %s %s", cfg.Database.Driver, cfg.Storage.Driver)
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("unexpected default queues: %v", cfg.Queue.Queues)
	}
}
