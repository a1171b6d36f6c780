package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pongarena/backend/internal/game"
	"github.com/pongarena/backend/internal/identity"
)

// Inbound message data types
type sessionData struct {
	SessionID string `json:"session_id"`
}

type moveData struct {
	SessionID string `json:"session_id"`
	Direction string `json:"direction"`
}

// HandleWebSocket authenticates the connection and hands it to the engine.
func HandleWebSocket(hub *Hub, engine *game.Engine, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}

		id, err := identity.FromToken(jwtSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			conn:     conn,
			connID:   uuid.NewString(),
			identity: id,
			send:     make(chan []byte, 256),
			hub:      hub,
			engine:   engine,
		}

		hub.register <- client
		engine.Connected(id)

		go client.writePump()
		go client.readPump()
	}
}

// readPump reads messages until the connection drops, then tears the
// player out of every session it was seated in.
func (c *Client) readPump() {
	defer func() {
		c.engine.Disconnect(c.connID, c.identity, true)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (unexpected) for conn %s: %v", c.connID, err)
			} else {
				log.Printf("WebSocket read error for conn %s: %v", c.connID, err)
			}
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage dispatches one inbound frame to the engine.
func (c *Client) handleMessage(msg wsMessage) {
	switch msg.Type {
	case "join":
		var data sessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.SessionID == "" {
			c.sendError("session_id required")
			return
		}
		c.engine.Join(data.SessionID, game.NewPlayer(c.connID, c.identity, c))

	case "enqueue_ranked":
		c.engine.EnqueueRanked(game.NewPlayer(c.connID, c.identity, c))

	case "dequeue_ranked":
		c.engine.DequeueRanked(c.identity)

	case "move":
		var data moveData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.SessionID == "" {
			c.sendError("session_id required")
			return
		}
		sign, ok := game.ParseDirection(data.Direction)
		if !ok {
			c.sendError("direction must be up, down or stop")
			return
		}
		c.engine.Move(data.SessionID, c.connID, sign)

	case "leave_voluntary":
		c.engine.Disconnect(c.connID, c.identity, false)

	case "rematch":
		var data sessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.SessionID == "" {
			c.sendError("session_id required")
			return
		}
		c.engine.Rematch(data.SessionID, c.connID)

	case "spectate":
		var data sessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.SessionID == "" {
			c.sendError("session_id required")
			return
		}
		c.engine.Spectate(data.SessionID, game.NewPlayer(c.connID, c.identity, c))

	case "unspectate":
		var data sessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.SessionID == "" {
			c.sendError("session_id required")
			return
		}
		c.engine.Unspectate(data.SessionID, c.connID)

	case "list_sessions":
		c.engine.ListSessions(c)

	default:
		c.sendError("Unknown message type")
	}
}
