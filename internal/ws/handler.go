package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pongarena/backend/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Envelope is the outbound wire frame: every push carries a type tag
// and an arbitrary data payload.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	conn     *websocket.Conn
	connID   string
	identity game.Identity
	send     chan []byte
	hub      *Hub
	engine   *game.Engine

	// The engine holds Sender references past unregistration (a queue
	// drain can still address a player whose socket just dropped), so
	// send teardown must be observable from Send itself.
	sendMu     sync.Mutex
	sendClosed bool
}

// Send implements game.Sender. It never blocks: a client that cannot
// drain its buffer loses frames rather than stalling the tick loop, and
// a torn-down client swallows them entirely.
func (c *Client) Send(event string, payload any) {
	data, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full for conn %s, dropping %s", c.connID, event)
	}
}

// closeSend tears down the outbound channel exactly once. After this,
// Send becomes a no-op and writePump drains what is left and exits.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

// Hub maintains the set of active clients
type Hub struct {
	clients    map[string]*Client // connID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Registration and teardown flow through here
// so map mutation never races with connection goroutines.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.connID] = client
			h.mu.Unlock()
			log.Printf("[WS] conn %s connected (user %d)", client.connID, client.identity.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.connID]; ok && cur == client {
				delete(h.clients, client.connID)
				cur.closeSend()
				log.Printf("[WS] conn %s disconnected (user %d)", client.connID, client.identity.UserID)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast implements game.Broadcaster: one event to every client.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Broadcast dropped %s for conn %s (buffer full)", event, client.connID)
		}
	}
}

// ClientCount reports connected clients, for the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// wsMessage is the inbound wire frame.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed — connection is being cleaned up.
				// Best-effort close frame; ignore errors (conn may already be closed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for conn %s: %v", c.connID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket ping error for conn %s: %v", c.connID, err)
				return
			}
		}
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.Send("error", map[string]any{"message": message})
}
