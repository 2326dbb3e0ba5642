// Package stream pushes journal events (trade created/updated/rescored)
// to connected dashboard clients over websocket.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub fans events out to subscribers. Slow subscribers are dropped
// rather than blocking publishers.
type Hub struct {
	Logger     *zap.Logger
	BufferSize int

	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewHub(logger *zap.Logger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Hub{
		Logger:     logger,
		BufferSize: bufferSize,
		subs:       map[chan []byte]struct{}{},
	}
}

// Publish implements service.EventSink.
func (h *Hub) Publish(eventType string, payload any) {
	if h == nil {
		return
	}
	raw, err := json.Marshal(Event{
		Type:    eventType,
		Payload: payload,
		At:      time.Now().UTC(),
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("event marshal failed", zap.String("type", eventType), zap.Error(err))
		}
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- raw:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

func (h *Hub) subscribe() chan []byte {
	ch := make(chan []byte, h.BufferSize)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Serve upgrades the request and streams events until the client goes
// away or the base context is cancelled.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// Write-only stream. CloseRead keeps reading control frames so the
	// context is cancelled when the client goes away; without it a hijacked
	// connection outlives r.Context() and an idle subscriber never exits.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, raw)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
