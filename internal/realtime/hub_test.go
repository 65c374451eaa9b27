package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("client should be registered")
	}

	hub.Broadcast("enquiry.created", map[string]interface{}{"id": 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var event Event
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("decode event failed: %v", err)
	}
	if event.Type != "enquiry.created" {
		t.Fatalf("unexpected event type: %s", event.Type)
	}
}

func TestNilHubIsSafe(t *testing.T) {
	var hub *Hub
	hub.Broadcast("enquiry.created", nil)
	if hub.ClientCount() != 0 {
		t.Fatalf("nil hub should report zero clients")
	}
}

func TestOriginChecker(t *testing.T) {
	cases := []struct {
		allowed []string
		origin  string
		want    bool
	}{
		{allowed: nil, origin: "https://any.example.com", want: true},
		{allowed: []string{"*"}, origin: "https://any.example.com", want: true},
		{allowed: []string{"https://admin.example.com/"}, origin: "https://Admin.example.com", want: true},
		{allowed: []string{"https://admin.example.com"}, origin: "https://evil.example.net", want: false},
		{allowed: []string{"https://admin.example.com"}, origin: "", want: true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		if got := originChecker(tc.allowed)(req); got != tc.want {
			t.Fatalf("allowed=%v origin=%q want %v got %v", tc.allowed, tc.origin, tc.want, got)
		}
	}
}
