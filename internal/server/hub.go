package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only public data; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans refreshed standings out to WebSocket subscribers. Strictly
// best-effort: a slow or broken subscriber is dropped, never waited on.
type Hub struct {
	logger *log.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// HandleSubscribe upgrades the request and registers the subscriber.
func (h *Hub) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		ws.Close()
		return
	}
	h.conns[ws] = struct{}{}
	h.mu.Unlock()

	// Subscribers never send application data; this pump only notices
	// the close.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				h.remove(ws)
				return
			}
		}
	}()
}

// Broadcast sends v as JSON to every subscriber, dropping any that
// cannot keep up.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.conns {
		//nolint:errcheck // Deadline failure surfaces on the write below
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(v); err != nil {
			ws.Close()
			delete(h.conns, ws)
		}
	}
}

// Close drops all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ws := range h.conns {
		ws.Close()
		delete(h.conns, ws)
	}
}

func (h *Hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[ws]; ok {
		ws.Close()
		delete(h.conns, ws)
	}
}
