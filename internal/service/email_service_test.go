package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/i18n"
	"github.com/autoparts-enquiry/internal/models"
)

func TestBuildNotificationContent(t *testing.T) {
	tests := []struct {
		name                string
		build               func() (string, string)
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name: "enquiry",
			build: func() (string, string) {
				return buildEnquiryNotifyContent(i18n.LocaleEN, &models.Enquiry{ID: 42, WhatsAppMessage: "Hello, I'm interested"})
			},
			wantSubjectContains: []string{"#42"},
			wantBodyContains:    []string{"Hello, I'm interested"},
		},
		{
			name: "contact_without_phone",
			build: func() (string, string) {
				return buildContactNotifyContent(i18n.LocaleEN, &models.ContactMessage{
					Name:    "Amina",
					Email:   "amina@example.com",
					Subject: "Gearbox",
					Message: "Do you stock gearbox mounts?",
				})
			},
			wantSubjectContains: []string{"Gearbox"},
			wantBodyContains:    []string{"Amina <amina@example.com>", "Phone: Not provided", "gearbox mounts"},
		},
		{
			name: "low_stock",
			build: func() (string, string) {
				return buildLowStockDigestContent(i18n.LocaleEN, 5, []models.Product{
					{Title: "Brake Pad", Stock: 2},
					{Title: "Oil Filter", Stock: 0},
				})
			},
			wantSubjectContains: []string{"2 products"},
			wantBodyContains:    []string{"threshold of 5", "- Brake Pad (stock: 2)", "- Oil Filter (stock: 0)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := tt.build()
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendTextEmailGuards(t *testing.T) {
	if err := NewEmailService(&config.EmailConfig{}).SendCustomEmail("a@example.com", "", ""); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("disabled email should return ErrEmailServiceDisabled, got %v", err)
	}
	if err := NewEmailService(&config.EmailConfig{Enabled: true}).SendCustomEmail("a@example.com", "", ""); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("missing host should return ErrEmailServiceNotConfigured, got %v", err)
	}
	svc := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, From: "shop@example.com"})
	if err := svc.SendCustomEmail("not-an-email", "", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("invalid recipient should return ErrInvalidEmail, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
