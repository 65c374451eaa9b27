package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallsBackToDefaultAndKey(t *testing.T) {
	if got := T(LocaleSW, "error.cart_empty"); got != "Kikapu chako cha maulizo ni tupu" {
		t.Fatalf("unexpected sw message: %s", got)
	}
	if got := T(LocaleSW, "error.import_failed"); got != messagesEN["error.import_failed"] {
		t.Fatalf("missing sw key should fall back to en, got %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("unknown key should return itself, got %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{url: "/", want: LocaleEN},
		{url: "/?lang=sw", want: LocaleSW},
		{url: "/", header: "sw-KE,en;q=0.8", want: LocaleSW},
		{url: "/", header: "fr-FR", want: LocaleEN},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("%s %q: want %s got %s", tc.url, tc.header, tc.want, got)
		}
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}
