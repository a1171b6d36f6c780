package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pongarena/backend/internal/game"
	"github.com/pongarena/backend/internal/ws"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(engine *game.Engine, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  "pongarena-api",
			"version":  version,
			"uptime":   time.Since(startTime).String(),
			"sessions": engine.SessionCount(),
			"queued":   engine.QueueLen(),
			"clients":  hub.ClientCount(),
		})
	}
}
