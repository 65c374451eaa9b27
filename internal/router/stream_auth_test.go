package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/http/handlers/admin"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/provider"
	"github.com/autoparts-enquiry/internal/realtime"
	"github.com/autoparts-enquiry/internal/repository"
	"github.com/autoparts-enquiry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func setupStreamServer(t *testing.T, allowedOrigins ...string) (*httptest.Server, string, *realtime.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	owner := &models.Admin{Email: "owner@example.com", PasswordHash: "x", Role: constants.AdminRoleOwner}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "secret", ExpireHours: 1}}
	authService := service.NewAuthService(cfg, repository.NewAdminRepository(db))
	token, _, err := authService.GenerateJWT(owner)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	hub := realtime.NewHub(allowedOrigins...)
	adminHandler := admin.New(&provider.Container{Hub: hub})
	r := gin.New()
	r.GET("/api/v1/admin/enquiries/stream", StreamJWTAuthMiddleware(authService, "secret"), adminHandler.StreamEnquiries)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Shutdown(context.Background())
		srv.Close()
	})
	return srv, token, hub
}

func streamURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/admin/enquiries/stream"
}

func waitForClients(t *testing.T, hub *realtime.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := hub.ClientCount(); got != want {
		t.Fatalf("want %d realtime clients got %d", want, got)
	}
}

func TestStreamAcceptsTokenFromSubprotocol(t *testing.T) {
	srv, token, hub := setupStreamServer(t)

	dialer := websocket.Dialer{Subprotocols: []string{realtime.TokenSubprotocol, token}}
	conn, resp, err := dialer.Dial(streamURL(srv), nil)
	if err != nil {
		t.Fatalf("dial with subprotocol token failed: %v", err)
	}
	defer conn.Close()
	if got := resp.Header.Get("Sec-WebSocket-Protocol"); got != realtime.TokenSubprotocol {
		t.Fatalf("server should echo only the marker subprotocol, got %q", got)
	}
	waitForClients(t, hub, 1)

	hub.Broadcast("enquiry.created", map[string]interface{}{"id": 1})
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, msg, err := conn.ReadMessage(); err != nil || !strings.Contains(string(msg), "enquiry.created") {
		t.Fatalf("expected pushed event, got %q err=%v", msg, err)
	}
}

func TestStreamAcceptsTokenFromQuery(t *testing.T) {
	srv, token, hub := setupStreamServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(streamURL(srv)+"?token="+url.QueryEscape(token), nil)
	if err != nil {
		t.Fatalf("dial with query token failed: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)
}

func TestStreamRejectsMissingOrBadToken(t *testing.T) {
	srv, _, hub := setupStreamServer(t)

	for _, target := range []string{streamURL(srv), streamURL(srv) + "?token=not-a-jwt"} {
		_, resp, err := websocket.DefaultDialer.Dial(target, nil)
		if err == nil {
			t.Fatalf("dial %s should fail without a valid token", target)
		}
		if resp == nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("rejected upgrade should return the json envelope, got %+v", resp)
		}
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("no client should be registered")
	}
}

func TestStreamRejectsForeignOrigin(t *testing.T) {
	srv, token, hub := setupStreamServer(t, "https://admin.example.com")

	header := http.Header{}
	header.Set("Origin", "https://evil.example.net")
	dialer := websocket.Dialer{Subprotocols: []string{realtime.TokenSubprotocol, token}}
	if _, _, err := dialer.Dial(streamURL(srv), header); err == nil {
		t.Fatalf("foreign origin should be refused")
	}

	header.Set("Origin", "https://admin.example.com")
	conn, _, err := dialer.Dial(streamURL(srv), header)
	if err != nil {
		t.Fatalf("configured origin should be accepted: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)
}
