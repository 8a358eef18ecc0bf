// Package notify mirrors orchestrator events to websocket clients. The feed
// is broadcast-only: clients subscribe by connecting, nothing they send is
// interpreted.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/brainink/arena/internal/model"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed carries public ledger state only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// envelope is the wire format: a type tag plus the event payload.
type envelope struct {
	Type model.LedgerEventType `json:"type"`
	Data model.LedgerEvent     `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans ledger events out to connected websocket clients. A client that
// cannot keep up is dropped rather than allowed to stall the broadcast.
type Hub struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// Broadcast serializes the event once and queues it to every client.
func (h *Hub) Broadcast(ev model.LedgerEvent) {
	data, err := json.Marshal(envelope{Type: ev.Type, Data: ev})
	if err != nil {
		h.log.Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow consumer: drop it, the ledger remains the source of truth.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writer()
	c.reader(h)
}

// Close disconnects every client. Safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	// send channel closed: say goodbye properly
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// reader discards inbound messages and unregisters the client when the
// connection dies.
func (c *client) reader(h *Hub) {
	defer func() {
		h.drop(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
