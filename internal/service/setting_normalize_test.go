package service

import (
	"errors"
	"testing"

	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/models"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestUpdateSiteSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		constants.SettingFieldSiteName:     "  Nairobi Auto Spares  ",
		constants.SettingFieldWhatsApp:     "+254 712-345-678",
		constants.SettingFieldCurrency:     "kes",
		constants.SettingFieldContactEmail: " sales@example.com ",
		"extra":                            "dropped",
	})
	if err != nil {
		t.Fatalf("update site config failed: %v", err)
	}
	if result[constants.SettingFieldSiteName] != "Nairobi Auto Spares" {
		t.Fatalf("unexpected site_name: %v", result[constants.SettingFieldSiteName])
	}
	if result[constants.SettingFieldWhatsApp] != "254712345678" {
		t.Fatalf("unexpected whatsapp_number: %v", result[constants.SettingFieldWhatsApp])
	}
	if result[constants.SettingFieldCurrency] != "KES" {
		t.Fatalf("unexpected currency: %v", result[constants.SettingFieldCurrency])
	}
	if result[constants.SettingFieldContactEmail] != "sales@example.com" {
		t.Fatalf("unexpected contact_email: %v", result[constants.SettingFieldContactEmail])
	}
	if _, ok := result["extra"]; ok {
		t.Fatalf("unknown field should be dropped")
	}
}

func TestUpdateSiteSettingRejectsInvalidEmail(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())
	_, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		constants.SettingFieldContactEmail: "not-an-email",
	})
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestUpdateUnknownSettingKeyRejected(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())
	if _, err := svc.Update("payment_config", map[string]interface{}{}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for unknown key, got %v", err)
	}
}

func TestLowStockThresholdSetting(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	threshold, err := svc.GetLowStockThreshold(7)
	if err != nil || threshold != 7 {
		t.Fatalf("unset threshold should return default 7, got %d err=%v", threshold, err)
	}

	if _, err := svc.Update(constants.SettingKeyDashboardConfig, map[string]interface{}{
		constants.SettingFieldLowStock: "3",
	}); err != nil {
		t.Fatalf("update dashboard config failed: %v", err)
	}
	threshold, err = svc.GetLowStockThreshold(7)
	if err != nil || threshold != 3 {
		t.Fatalf("stored threshold want 3 got %d err=%v", threshold, err)
	}

	if _, err := svc.Update(constants.SettingKeyDashboardConfig, map[string]interface{}{
		constants.SettingFieldLowStock: -1,
	}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("negative threshold should be rejected, got %v", err)
	}
}

func TestGetConfigOverlaysNonEmptyValues(t *testing.T) {
	repo := newMockSettingRepo()
	repo.store[constants.SettingKeySiteConfig] = models.JSON{
		constants.SettingFieldSiteName: "Stored Name",
		constants.SettingFieldWhatsApp: "",
	}
	svc := NewSettingService(repo)

	data, err := svc.GetConfig(map[string]interface{}{
		constants.SettingFieldSiteName: "Default",
		constants.SettingFieldWhatsApp: "254700000000",
	})
	if err != nil {
		t.Fatalf("get config failed: %v", err)
	}
	if data[constants.SettingFieldSiteName] != "Stored Name" {
		t.Fatalf("stored site_name should win, got %v", data[constants.SettingFieldSiteName])
	}
	if data[constants.SettingFieldWhatsApp] != "254700000000" {
		t.Fatalf("empty stored value should keep default, got %v", data[constants.SettingFieldWhatsApp])
	}

	var nilSvc *SettingService
	if data, err := nilSvc.GetConfig(map[string]interface{}{"k": "v"}); err != nil || data["k"] != "v" {
		t.Fatalf("nil service should return defaults, got %v err=%v", data, err)
	}
}
