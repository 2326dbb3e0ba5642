package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func countSubs(h *Hub) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestServeReleasesSubscriberOnClientClose(t *testing.T) {
	hub := NewHub(nil, 8)
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn := dialHub(t, srv)
	waitFor(t, time.Second, func() bool { return countSubs(hub) == 1 })

	conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, 2*time.Second, func() bool { return countSubs(hub) == 0 })
}

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub(nil, 8)
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, time.Second, func() bool { return countSubs(hub) == 1 })

	hub.Publish("trade.created", map[string]any{"id": 1})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, raw, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != "trade.created" {
		t.Fatalf("type=%q want trade.created", ev.Type)
	}
}

func TestPublishDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(nil, 1)
	ch := hub.subscribe()

	hub.Publish("a", nil)
	hub.Publish("b", nil)

	if n := countSubs(hub); n != 0 {
		t.Fatalf("subs=%d want 0 after overflow", n)
	}
	<-ch
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after drop")
	}
}
